// Package hdu maps FITS primary image headers to typed fields and reads and writes
// complete image files.
//
// An Image bundles the header cards, the typed ImageHeader, the HISTORY and COMMENT
// text and the decoded pixels. Decoder reads one image from a stream; Encoder writes
// one. ReadFile and WriteFile add file naming and whole-file transport compression
// chosen by extension (.zst, .s2, .lz4).
//
// Reading:
//
//	img, err := hdu.ReadFile("m31.fits")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(img.Header.Axes, len(img.Pixels))
//
// Writing:
//
//	img, err := hdu.NewImage(format.BitPixFloat32, 4, 3)
//	if err != nil {
//	    return err
//	}
//	_ = img.SetPixels(values)
//	_ = img.AddHistory("flat fielded")
//	err = hdu.WriteFile("out.fits.zst", img, hdu.WithOverwrite(true))
//
// Neither Decoder nor Encoder is safe for concurrent use.
package hdu

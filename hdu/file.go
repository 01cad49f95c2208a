package hdu

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arloliu/fitsio/compress"
	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
)

// FileName returns name with ".fits" appended unless it already names a FITS file
// (contains ".fit").
func FileName(name string) string {
	if strings.Contains(name, ".fit") {
		return name
	}

	return name + ".fits"
}

// ReadFile reads and decodes the image stored at name. Names ending in .zst, .s2 or
// .lz4 are decompressed first unless WithCompression says otherwise.
func ReadFile(name string, opts ...Option) (*Image, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	name = FileName(name)
	payload, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compressionFor(name))
	if err != nil {
		return nil, err
	}
	data, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	dec, err := NewDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, err
	}

	img, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if cfg.debug {
		cfg.logger.Debug("read file", "name", name, "bytes", len(payload))
	}

	return img, nil
}

// WriteFile encodes img and writes it to name, compressing by extension as ReadFile
// decompresses. An existing file is only replaced with WithOverwrite(true).
func WriteFile(name string, img *Image, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}

	name = FileName(name)
	if !cfg.overwrite {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("%s: %w", name, errs.ErrFileExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, opts...)
	if err != nil {
		return err
	}
	if _, err := enc.Encode(img); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	payload, cstats, err := compress.CompressWithStats(cfg.compressionFor(name), buf.Bytes())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !cfg.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", name, errs.ErrFileExists)
		}

		return err
	}

	n, err := f.Write(payload)
	if err == nil && n != len(payload) {
		err = errs.ErrShortWrite
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if cfg.debug {
		cfg.logger.Debug("wrote file",
			"name", name,
			"compression", cstats.Algorithm.String(),
			"bytes", cstats.CompressedSize,
			"ratio", cstats.CompressionRatio(),
		)
	}

	return nil
}

func (cfg *Config) compressionFor(name string) format.CompressionType {
	if cfg.compression != 0 {
		return cfg.compression
	}

	return format.CompressionForPath(name)
}

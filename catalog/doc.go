// Package catalog keeps a persistent index of FITS header summaries in a Pebble
// key/value store.
//
// Each file is stored under the key "entry/<path>" as a JSON document holding a
// ksuid, the header summary, the xxHash64 digest of the data section and the time
// it was indexed. Entries are listed in path order.
//
//	cat, err := catalog.Open("/var/lib/fitsio/catalog")
//	if err != nil {
//	    return err
//	}
//	defer cat.Close()
//
//	n, err := catalog.IndexDir(ctx, cat, "/data/night1")
package catalog

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/format"
	"github.com/arloliu/fitsio/hdu"
	"github.com/arloliu/fitsio/internal/hash"
)

func openMem(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open("catalog", WithFS(vfs.NewMem()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func testImage(t *testing.T) *hdu.Image {
	t.Helper()

	img, err := hdu.NewImage(format.BitPixInt16, 4, 3)
	require.NoError(t, err)
	for i := range img.Pixels {
		img.Pixels[i] = float64(i)
	}
	img.Header.CType = [2]string{"RA---TAN", "DEC--TAN"}

	return img
}

func TestNewEntry(t *testing.T) {
	require := require.New(t)

	img := testImage(t)
	img.Digest = 0x4fdcca5ddb678139

	e := NewEntry("/data/m31.fits", img)
	require.True(e.ID.IsNil())
	require.Equal("/data/m31.fits", e.Path)
	require.Equal(2, e.Header.NAxis)
	require.Equal([]int{4, 3}, e.Header.Axes)
	require.Equal(16, e.Header.BitPix)
	require.Equal(1.0, e.Header.BScale)
	require.Equal([2]string{"RA---TAN", "DEC--TAN"}, e.Header.CType)
	require.Equal("4fdcca5ddb678139", e.Digest)
	require.Equal(int64(24), e.Size)
	require.Equal(3, e.Cards)
}

func TestCatalog_PutGet(t *testing.T) {
	require := require.New(t)

	c := openMem(t)
	stored, err := c.Put(NewEntry("/data/m31.fits", testImage(t)))
	require.NoError(err)
	require.False(stored.ID.IsNil())
	require.False(stored.IndexedAt.IsZero())

	got, err := c.Get("/data/m31.fits")
	require.NoError(err)
	require.Equal(stored.ID, got.ID)
	require.Equal(stored.Header, got.Header)
	require.True(stored.IndexedAt.Equal(got.IndexedAt))
}

func TestCatalog_PutKeepsID(t *testing.T) {
	require := require.New(t)

	c := openMem(t)
	first, err := c.Put(Entry{Path: "/a.fits"})
	require.NoError(err)

	second, err := c.Put(Entry{Path: "/a.fits", ID: ksuid.New(), Cards: 9})
	require.NoError(err)
	require.Equal(first.ID, second.ID)

	got, err := c.Get("/a.fits")
	require.NoError(err)
	require.Equal(9, got.Cards)
}

func TestCatalog_PutKeepsIndexedAt(t *testing.T) {
	c := openMem(t)
	at := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	stored, err := c.Put(Entry{Path: "/a.fits", IndexedAt: at})
	require.NoError(t, err)
	require.Equal(t, at, stored.IndexedAt)
}

func TestCatalog_Errors(t *testing.T) {
	require := require.New(t)

	c := openMem(t)
	_, err := c.Get("/missing.fits")
	require.ErrorIs(err, errs.ErrNotFound)

	_, err = c.Put(Entry{})
	require.ErrorIs(err, errs.ErrInvalidValue)
	require.True(errs.IsFormat(err))

	require.NoError(c.Delete("/missing.fits"))
}

func TestCatalog_ListAndDelete(t *testing.T) {
	require := require.New(t)

	c := openMem(t)
	for _, path := range []string{"/night2/b.fits", "/night1/b.fits", "/night1/a.fits", "/night10/a.fits"} {
		_, err := c.Put(Entry{Path: path})
		require.NoError(err)
	}

	list := func(prefix string) []string {
		var paths []string
		for e, err := range c.List(prefix) {
			require.NoError(err)
			paths = append(paths, e.Path)
		}

		return paths
	}

	require.Equal([]string{"/night1/a.fits", "/night1/b.fits"}, list("/night1/"))
	require.Equal([]string{"/night1/a.fits", "/night1/b.fits", "/night10/a.fits"}, list("/night1"))
	require.Len(list(""), 4)
	require.Empty(list("/night3"))

	require.NoError(c.Delete("/night1/a.fits"))
	require.Equal([]string{"/night1/b.fits"}, list("/night1/"))

	// early break
	count := 0
	for range c.List("") {
		count++
		break
	}
	require.Equal(1, count)
}

func TestUpperBound(t *testing.T) {
	require.Equal(t, []byte("entry0"), upperBound([]byte("entry/")))
	require.Equal(t, []byte{0x02}, upperBound([]byte{0x01, 0xff}))
	require.Nil(t, upperBound([]byte{0xff, 0xff}))
}

func TestIndexDir(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	img := testImage(t)
	require.NoError(os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(hdu.WriteFile(filepath.Join(dir, "a.fits"), img))
	require.NoError(hdu.WriteFile(filepath.Join(dir, "sub", "b.fits.zst"), img, hdu.WithOverwrite(true)))
	require.NoError(os.WriteFile(filepath.Join(dir, "broken.fits"), []byte("not a fits file"), 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	c := openMem(t)
	n, err := IndexDir(context.Background(), c, dir)
	require.NoError(err)
	require.Equal(2, n)

	abs, err := filepath.Abs(filepath.Join(dir, "a.fits"))
	require.NoError(err)
	e, err := c.Get(abs)
	require.NoError(err)
	require.Equal(hash.Hex(img.Digest), e.Digest)
	require.Equal([]int{4, 3}, e.Header.Axes)
}

func TestIndexDir_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := IndexDir(ctx, openMem(t), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

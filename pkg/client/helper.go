package client

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v4"
	"github.com/opencontainers/go-digest"
	"kubegems.io/modelpack/pkg/types"
)

// DescriptorWithContent pairs a descriptor with a content opener. The
// opener returns a fresh reader on every call.
type DescriptorWithContent struct {
	types.Descriptor
	Content func() (io.ReadCloser, error)
}

var EmptyFileDigest = digest.Canonical.FromBytes(nil)

var tgz = archiver.CompressedArchive{
	Archival:    archiver.Tar{},
	Compression: archiver.Gz{},
}

// TGZ archives dir, writes the archive to intofile when set, and
// returns the archive digest. With an empty intofile only the digest
// is computed. Attributes are cleared so the digest is reproducible.
func TGZ(ctx context.Context, dir string, intofile string) (digest.Digest, error) {
	files, err := archiver.FilesFromDisk(
		&archiver.FromDiskOptions{ClearAttributes: true},
		map[string]string{dir + string(os.PathSeparator): ""},
	)
	if err != nil {
		return "", err
	}

	writers := []io.Writer{}
	if intofile != "" {
		if err := os.MkdirAll(filepath.Dir(intofile), 0o755); err != nil {
			return "", err
		}
		f, err := os.Create(intofile)
		if err != nil {
			return "", err
		}
		defer f.Close()

		writers = append(writers, f)
	}
	d := digest.Canonical.Digester()
	writers = append(writers, d.Hash())

	if err := tgz.Archive(ctx, io.MultiWriter(writers...), files); err != nil {
		return "", err
	}
	return d.Digest(), nil
}

func UnTGZ(ctx context.Context, intodir string, reader io.Reader) error {
	return tgz.Extract(ctx, reader, nil, func(ctx context.Context, f archiver.File) error {
		nameinlocal := filepath.Join(intodir, f.NameInArchive)
		if f.IsDir() {
			return os.MkdirAll(nameinlocal, f.Mode())
		}
		srcfile, err := f.Open()
		if err != nil {
			return err
		}
		defer srcfile.Close()

		if err := os.MkdirAll(filepath.Dir(nameinlocal), 0o755); err != nil {
			return err
		}
		intofile, err := os.OpenFile(nameinlocal, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}
		defer intofile.Close()

		_, err = io.Copy(intofile, srcfile)
		return err
	})
}

func writeFile(filename string, src io.ReadCloser, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm.Perm())
	if err != nil {
		return err
	}
	defer f.Close()
	defer src.Close()

	_, err = io.Copy(f, src)
	return err
}

package report

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
)

// ArchiveFileName is the fragment archive within the output directory.
const ArchiveFileName = "fragments.tar.lz4"

// archiveFragments packs the given fragment files into an LZ4-compressed
// tar archive. Entries are stored under their base names.
func archiveFragments(archivePath string, fragmentPaths []string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	lzw := lz4.NewWriter(f)
	tw := tar.NewWriter(lzw)

	for _, path := range fragmentPaths {
		err = addFragment(tw, path)
		if err != nil {
			tw.Close()
			lzw.Close()
			f.Close()

			return err
		}
	}

	if err := tw.Close(); err != nil {
		lzw.Close()
		f.Close()

		return fmt.Errorf("close tar writer: %w", err)
	}

	if err := lzw.Close(); err != nil {
		f.Close()

		return fmt.Errorf("close lz4 writer: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

func addFragment(tw *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat fragment: %w", err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("build tar header: %w", err)
	}

	header.Name = filepath.Base(path)

	err = tw.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write tar header: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fragment: %w", err)
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	if err != nil {
		return fmt.Errorf("archive fragment %s: %w", path, err)
	}

	return nil
}

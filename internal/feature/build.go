package feature

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Opener reopens the feature file from the start; GFF3 needs two full
// passes (id dictionary, then intervals) so the stream cannot simply be
// rewound in place.
type Opener func() (io.ReadCloser, error)

type decompressed struct {
	io.Reader
	underlying io.Closer
	gz         *gzip.Reader
}

func (d *decompressed) Close() error {
	if d.gz != nil {
		_ = d.gz.Close()
	}
	return d.underlying.Close()
}

func openMaybeGzip(open Opener) (*decompressed, bool, error) {
	rc, err := open()
	if err != nil {
		return nil, false, err
	}
	br := bufio.NewReader(rc)
	magic, _ := br.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			_ = rc.Close()
			return nil, false, fmt.Errorf("open gzip stream: %w", err)
		}
		return &decompressed{Reader: gz, underlying: rc, gz: gz}, true, nil
	}
	return &decompressed{Reader: br, underlying: rc}, false, nil
}

func peekFirstLine(open Opener) (string, error) {
	d, _, err := openMaybeGzip(open)
	if err != nil {
		return "", err
	}
	defer d.Close()
	scanner := bufio.NewScanner(d)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}

// Build parses filename (reopened via open as needed) using the detected
// format, flattens the resulting per-chromosome intervals and returns the
// Index the proximity scan queries.
func Build(open Opener, filename string, resolve func(name string) (int32, bool), idName, featureType string) (*Index, error) {
	firstLine, err := peekFirstLine(open)
	if err != nil {
		return nil, fmt.Errorf("peek feature file: %w", err)
	}
	format := DetectFormat(filename, firstLine)

	var overlapping map[int32][]IntervalLabel
	var genes *geneTable

	switch format {
	case FormatBED:
		d, _, err := openMaybeGzip(open)
		if err != nil {
			return nil, err
		}
		overlapping, genes, err = ParseBED(d, resolve)
		_ = d.Close()
		if err != nil {
			return nil, err
		}

	case FormatGTF:
		d, isGzip, err := openMaybeGzip(open)
		if err != nil {
			return nil, err
		}
		if !isGzip {
			_ = d.Close()
			return nil, fmt.Errorf("GTF file is not gzipped")
		}
		overlapping, genes, err = ParseGTF(d, resolve, idName, featureType)
		_ = d.Close()
		if err != nil {
			return nil, err
		}

	case FormatGFF3:
		dictReader, isGzip, err := openMaybeGzip(open)
		if err != nil {
			return nil, err
		}
		if !isGzip {
			_ = dictReader.Close()
			return nil, fmt.Errorf("GFF3 file is not gzipped")
		}
		idDict, err := buildGFF3IDDict(dictReader, idName)
		_ = dictReader.Close()
		if err != nil {
			return nil, err
		}

		featureReader, _, err := openMaybeGzip(open)
		if err != nil {
			return nil, err
		}
		overlapping, genes, err = ParseGFF3(featureReader, idDict, resolve, idName, featureType)
		_ = featureReader.Close()
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unrecognized feature file format")
	}

	return &Index{
		GeneIDs:       genes.names,
		ProteinCoding: genes.proteinCoding,
		byChrom:       flatten(overlapping),
	}, nil
}

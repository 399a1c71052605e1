package cmd

import (
	"bufio"
	"io"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/safariconverter/internal/converter"
	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"
)

// outFilePerm is the access mode of the written output file.
const outFilePerm os.FileMode = 0o644

// readInput reads the rule lines from the input file, or from stdin when no
// file is configured.  Reading stops at the configured size cap.
func readInput(envs *environment) (lines []string, err error) {
	defer func() { err = errors.Annotate(err, "reading input: %w") }()

	var r io.Reader = os.Stdin
	if envs.InputPath != "" {
		f, fErr := os.Open(envs.InputPath)
		if fErr != nil {
			return nil, fErr
		}
		defer func() { err = errors.WithDeferred(err, f.Close()) }()

		r = f
	}

	s := bufio.NewScanner(io.LimitReader(r, int64(envs.MaxInputSize.Bytes())))
	for s.Scan() {
		lines = append(lines, s.Text())
	}

	err = s.Err()
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// writeOutput writes the result document to the output file, atomically
// replacing it, or to stdout when no file is configured.
func writeOutput(envs *environment, res converter.Result) (err error) {
	defer func() { err = errors.Annotate(err, "writing output: %w") }()

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	data = append(data, '\n')

	if envs.OutputPath == "" {
		_, err = os.Stdout.Write(data)

		return err
	}

	return renameio.WriteFile(envs.OutputPath, data, outFilePerm)
}

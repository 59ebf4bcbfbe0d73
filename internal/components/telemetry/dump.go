package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

const report_dump_write = "dump.write"

// MessageOutput receives the full text of every http exchange of a client.
type MessageOutput interface {
	Write(id string, contents string) error
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput writes every message to its own file in dir, the
// directory is created if it does not exist.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) error {
	return os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
}

// DumpResty writes the request and response of every completed exchange of the
// client to out, failures to write are reported to tel. Values of the form
// fields named in redact never reach out.
func DumpResty(client *resty.Client, out MessageOutput, tel API, redact ...string) {
	var count atomic.Uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := fmt.Sprintf("%03d-%s.txt", count.Add(1), res.Request.Method)
		err := out.Write(id, formatHttpMessage(res, redact))
		if err != nil {
			tel.ReportWarning(report_dump_write, err, id)
		}
		return nil
	})
}

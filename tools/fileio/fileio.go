// Package fileio implements the read_file and write_file tools. Reading
// supports plain text plus PDF and DOCX extraction.
package fileio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dslipak/pdf"
	"github.com/fumiama/go-docx"

	"github.com/denali-labs/reagent/llmutils"
	"github.com/denali-labs/reagent/schema"
	"github.com/denali-labs/reagent/tools"
)

const (
	ReadToolName  = "read_file"
	WriteToolName = "write_file"
)

// MaxContentSize caps the extracted text returned to the model.
const MaxContentSize = 8000

// ReadRequest represents the read_file tool input.
type ReadRequest struct {
	Path string `json:"Path" jsonschema:"title=Path,description=The path of the file to read."`
}

// ReadResponse carries the extracted file content.
type ReadResponse struct {
	Content string `json:"Content"`
}

// ReadTool reads a local file and returns its text content.
type ReadTool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[ReadRequest, ReadResponse] = (*ReadTool)(nil)

func NewReadTool() (*ReadTool, error) {
	sc, err := schema.New(reflect.TypeOf(ReadRequest{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &ReadTool{
		name:        ReadToolName,
		description: "Read the content of a local file; supports .txt, .md, .csv, .pdf and .docx.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *ReadTool) Name() string {
	return t.name
}

func (t *ReadTool) Description() string {
	return t.description
}

func (t *ReadTool) Parameters() any {
	return t.funcParams
}

func (t *ReadTool) Run(ctx context.Context, req *ReadRequest) (*ReadResponse, error) {
	if req.Path == "" {
		return nil, errors.New("invalid request: empty path")
	}

	var content string
	var err error
	switch strings.ToLower(filepath.Ext(req.Path)) {
	case ".txt", ".md", ".csv":
		content, err = readPlain(req.Path)
	case ".pdf":
		content, err = readPDF(req.Path)
	case ".docx":
		content, err = readDOCX(req.Path)
	default:
		return nil, errors.Newf("unsupported file type: %s", filepath.Ext(req.Path))
	}
	if err != nil {
		return nil, err
	}

	return &ReadResponse{Content: llmutils.Truncate(content, MaxContentSize)}, nil
}

func (t *ReadTool) Call(ctx context.Context, input string) (string, error) {
	req := ReadRequest{
		Path: tools.StringArg(input, "Path"),
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

func readPlain(path string) (string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithMessage(err, "failed to read file")
	}
	return string(bs), nil
}

func readPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", errors.WithMessage(err, "failed to open PDF")
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", errors.WithMessage(err, "failed to extract PDF text")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", errors.WithMessage(err, "failed to extract PDF text")
	}
	return buf.String(), nil
}

func readDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WithMessage(err, "failed to open DOCX")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", errors.WithMessage(err, "failed to open DOCX")
	}

	doc, err := docx.Parse(f, fi.Size())
	if err != nil {
		return "", errors.WithMessage(err, "failed to parse DOCX")
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := it.String()
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// WriteRequest represents the write_file tool input.
type WriteRequest struct {
	Path    string `json:"Path" jsonschema:"title=Path,description=The path of the file to write."`
	Content string `json:"Content" jsonschema:"title=Content,description=The content to write to the file."`
}

// WriteResponse confirms the written file.
type WriteResponse struct {
	Message string `json:"Message"`
}

// WriteTool writes text content to a local file.
type WriteTool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[WriteRequest, WriteResponse] = (*WriteTool)(nil)

func NewWriteTool() (*WriteTool, error) {
	sc, err := schema.New(reflect.TypeOf(WriteRequest{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &WriteTool{
		name:        WriteToolName,
		description: `Write content to a local file; input is "path", "content".`,
		funcParams:  sc.Parameters,
	}, nil
}

func (t *WriteTool) Name() string {
	return t.name
}

func (t *WriteTool) Description() string {
	return t.description
}

func (t *WriteTool) Parameters() any {
	return t.funcParams
}

func (t *WriteTool) Run(ctx context.Context, req *WriteRequest) (*WriteResponse, error) {
	if req.Path == "" {
		return nil, errors.New("invalid request: empty path")
	}

	if dir := filepath.Dir(req.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WithMessage(err, "failed to create directory")
		}
	}
	if err := os.WriteFile(req.Path, []byte(req.Content), 0o644); err != nil {
		return nil, errors.WithMessage(err, "failed to write file")
	}

	return &WriteResponse{
		Message: fmt.Sprintf("Content written to %s successfully.", req.Path),
	}, nil
}

// pathContentRe matches the `"path", "content"` input form; content may
// span multiple lines.
var pathContentRe = regexp.MustCompile(`(?s)^\s*"(.*?)"\s*,\s*"(.*)"\s*$`)

func (t *WriteTool) Call(ctx context.Context, input string) (string, error) {
	req := WriteRequest{}
	if m := pathContentRe.FindStringSubmatch(input); m != nil {
		req.Path = m[1]
		req.Content = m[2]
	} else {
		var parsed WriteRequest
		if err := llmutils.UnmarshalLenient([]byte(input), &parsed); err == nil && parsed.Path != "" {
			req = parsed
		} else {
			return "", errors.New(`invalid request: expected "path", "content"`)
		}
	}

	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

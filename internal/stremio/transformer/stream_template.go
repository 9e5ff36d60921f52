package stremio_transformer

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/f1catchup/f1catchup/stremio"
)

type StreamTemplateBlob struct {
	Name        string
	Description string
}

type StreamTemplate struct {
	Blob        StreamTemplateBlob
	Name        *template.Template
	Description *template.Template
}

var StreamTemplateDefault = func() *StreamTemplate {
	st, err := StreamTemplateBlob{
		Name: `F1 Catchup
{{with .GetResolution}}{{.}}{{else}}Unknown{{end}}`,
		Description: `{{.TTitle}}
{{if .Size}}💾 {{.Size}} {{end}}{{if .IsTorrent}}👤 {{.Seeders}}{{else}}📰 Usenet{{end}}
{{if .IsFullPack}}Full weekend pack{{end}}`,
	}.Parse()
	if err != nil {
		panic(err)
	}
	return st
}()

func (blob StreamTemplateBlob) Parse() (*StreamTemplate, error) {
	st := &StreamTemplate{Blob: blob}
	name, err := template.New("name").Parse(blob.Name)
	if err != nil {
		return nil, err
	}
	st.Name = name
	description, err := template.New("description").Parse(blob.Description)
	if err != nil {
		return nil, err
	}
	st.Description = description
	return st, nil
}

func execute(t *template.Template, data *StreamResult) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	lines := strings.Split(buf.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func (st *StreamTemplate) Execute(stream *stremio.Stream, data *StreamResult) (*stremio.Stream, error) {
	name, err := execute(st.Name, data)
	if err != nil {
		return nil, err
	}
	description, err := execute(st.Description, data)
	if err != nil {
		return nil, err
	}
	stream.Name = name
	stream.Description = description
	return stream, nil
}

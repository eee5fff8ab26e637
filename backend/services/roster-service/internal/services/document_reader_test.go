package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

type xmlRun struct {
	Text string `xml:"t"`
}

type xmlParagraph struct {
	Runs []xmlRun `xml:"r"`
}

func (p xmlParagraph) text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type xmlTable struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []xmlParagraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

type xmlDocument struct {
	Body struct {
		Paragraphs []xmlParagraph `xml:"p"`
		Tables     []xmlTable     `xml:"tbl"`
	} `xml:"body"`
}

// documentContents is the plain-text view of a rendered .docx body.
type documentContents struct {
	Paragraphs []string
	Tables     [][][]string
}

func readDocument(path string) (*documentContents, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		var doc xmlDocument
		if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		out := &documentContents{}
		for _, p := range doc.Body.Paragraphs {
			if txt := p.text(); txt != "" {
				out.Paragraphs = append(out.Paragraphs, txt)
			}
		}
		for _, t := range doc.Body.Tables {
			rows := make([][]string, 0, len(t.Rows))
			for _, r := range t.Rows {
				cells := make([]string, 0, len(r.Cells))
				for _, c := range r.Cells {
					parts := make([]string, 0, len(c.Paragraphs))
					for _, p := range c.Paragraphs {
						parts = append(parts, p.text())
					}
					cells = append(cells, strings.Join(parts, "\n"))
				}
				rows = append(rows, cells)
			}
			out.Tables = append(out.Tables, rows)
		}
		return out, nil
	}
	return nil, fmt.Errorf("word/document.xml not found in %s", path)
}

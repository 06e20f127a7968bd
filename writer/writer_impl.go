package writer

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"sort"

	"classdeck/document"
)

type impl struct{}

func (wr *impl) Write(ctx context.Context, doc *document.Document, out io.Writer, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("document has no pages")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")

	offsets := make(map[int]int64)
	nextNum := 0
	addObj := func(o pdfObj) int {
		nextNum++
		offsets[nextNum] = int64(buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n", nextNum)
		o.writeTo(&buf)
		buf.WriteString("\nendobj\n")
		return nextNum
	}

	// Object numbers are assigned up front so dictionaries can reference
	// objects emitted later.
	total := 2 // catalog + pages tree
	baseFonts := make(map[string]bool)
	for _, p := range doc.Pages {
		if p.Resources != nil {
			for _, f := range p.Resources.Fonts {
				baseFonts[f.BaseFont] = true
			}
		}
	}
	fontRefs := make(map[string]int, len(baseFonts))
	for _, base := range sortedFlagKeys(baseFonts) {
		total++
		fontRefs[base] = total
	}

	catalogRef := 1
	pagesRef := 2

	type pagePlan struct {
		page     *document.Page
		ref      int
		content  int
		xobjects map[string]int
	}
	plans := make([]pagePlan, 0, len(doc.Pages))
	imageRefs := make(map[*document.Image]int)
	for _, p := range doc.Pages {
		plan := pagePlan{page: p, xobjects: make(map[string]int)}
		if p.Resources != nil {
			for _, name := range sortedXObjectNames(p.Resources.XObjects) {
				img := p.Resources.XObjects[name]
				ref, ok := imageRefs[img]
				if !ok {
					total++
					ref = total
					imageRefs[img] = ref
				}
				plan.xobjects[name] = ref
			}
		}
		total++
		plan.content = total
		total++
		plan.ref = total
		plans = append(plans, plan)
	}
	infoRef := 0
	if doc.Info != nil {
		total++
		infoRef = total
	}

	// Catalog and pages tree.
	kids := make(pdfArray, 0, len(plans))
	for _, plan := range plans {
		kids = append(kids, pdfRef(plan.ref))
	}
	if n := addObj(pdfDict{"Type": pdfName("Catalog"), "Pages": pdfRef(pagesRef)}); n != catalogRef {
		return fmt.Errorf("object numbering drift: catalog at %d", n)
	}
	addObj(pdfDict{
		"Type":  pdfName("Pages"),
		"Count": pdfInt(len(plans)),
		"Kids":  kids,
	})

	// Shared font objects.
	for _, base := range sortedKeys(fontRefs) {
		addObj(pdfDict{
			"Type":     pdfName("Font"),
			"Subtype":  pdfName("Type1"),
			"BaseFont": pdfName(base),
			"Encoding": pdfName("WinAnsiEncoding"),
		})
	}

	// Per-page images, content, and page dictionary.
	written := make(map[*document.Image]bool)
	for _, plan := range plans {
		p := plan.page
		for _, name := range sortedXObjectNames(xobjectsOf(p)) {
			img := p.Resources.XObjects[name]
			if written[img] {
				continue
			}
			written[img] = true
			addObj(imageStream(img))
		}

		contentData := encodeOperations(p.Contents)
		content := &pdfStream{dict: pdfDict{}, data: contentData}
		if cfg.Compress {
			content.data = deflate(contentData)
			content.dict["Filter"] = pdfName("FlateDecode")
		}
		addObj(content)

		pageDict := pdfDict{
			"Type":   pdfName("Page"),
			"Parent": pdfRef(pagesRef),
			"MediaBox": pdfArray{
				pdfReal(p.MediaBox.LLX), pdfReal(p.MediaBox.LLY),
				pdfReal(p.MediaBox.URX), pdfReal(p.MediaBox.URY),
			},
			"Contents": pdfRef(plan.content),
		}
		res := pdfDict{}
		if p.Resources != nil && len(p.Resources.Fonts) > 0 {
			fd := pdfDict{}
			for name, f := range p.Resources.Fonts {
				fd[name] = pdfRef(fontRefs[f.BaseFont])
			}
			res["Font"] = fd
		}
		if len(plan.xobjects) > 0 {
			xd := pdfDict{}
			for name, ref := range plan.xobjects {
				xd[name] = pdfRef(ref)
			}
			res["XObject"] = xd
		}
		pageDict["Resources"] = res
		addObj(pageDict)
	}

	if doc.Info != nil {
		info := pdfDict{}
		setIfNotEmpty(info, "Title", doc.Info.Title)
		setIfNotEmpty(info, "Author", doc.Info.Author)
		setIfNotEmpty(info, "Subject", doc.Info.Subject)
		setIfNotEmpty(info, "Creator", doc.Info.Creator)
		setIfNotEmpty(info, "Producer", doc.Info.Producer)
		addObj(info)
	}

	// Cross-reference table and trailer.
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", nextNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= nextNum; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	trailer := pdfDict{
		"Size": pdfInt(nextNum + 1),
		"Root": pdfRef(catalogRef),
	}
	if infoRef != 0 {
		trailer["Info"] = pdfRef(infoRef)
	}
	buf.WriteString("trailer\n")
	trailer.writeTo(&buf)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := out.Write(buf.Bytes())
	return err
}

func imageStream(img *document.Image) *pdfStream {
	dict := pdfDict{
		"Type":             pdfName("XObject"),
		"Subtype":          pdfName("Image"),
		"Width":            pdfInt(img.Width),
		"Height":           pdfInt(img.Height),
		"ColorSpace":       pdfName(img.ColorSpace),
		"BitsPerComponent": pdfInt(img.BitsPerComponent),
	}
	data := img.Data
	if img.Filter != "" {
		dict["Filter"] = pdfName(img.Filter)
	} else {
		dict["Filter"] = pdfName("FlateDecode")
		data = deflate(img.Data)
	}
	return &pdfStream{dict: dict, data: data}
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

func xobjectsOf(p *document.Page) map[string]*document.Image {
	if p.Resources == nil {
		return nil
	}
	return p.Resources.XObjects
}

func sortedXObjectNames(m map[string]*document.Image) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFlagKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setIfNotEmpty(d pdfDict, key, value string) {
	if value != "" {
		d[key] = pdfString(value)
	}
}

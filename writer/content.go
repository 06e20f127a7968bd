package writer

import (
	"bytes"

	"classdeck/document"
)

// encodeOperations renders content-stream operations as operator syntax,
// one operation per line.
func encodeOperations(streams []document.ContentStream) []byte {
	var b bytes.Buffer
	for _, cs := range streams {
		for _, op := range cs.Operations {
			for _, operand := range op.Operands {
				encodeOperand(&b, operand)
				b.WriteByte(' ')
			}
			b.WriteString(op.Operator)
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}

func encodeOperand(b *bytes.Buffer, operand document.Operand) {
	switch v := operand.(type) {
	case document.NumberOperand:
		pdfReal(v.Value).writeTo(b)
	case document.NameOperand:
		pdfName(v.Value).writeTo(b)
	case document.StringOperand:
		pdfString(v.Value).writeTo(b)
	case document.ArrayOperand:
		b.WriteByte('[')
		for i, item := range v.Values {
			if i > 0 {
				b.WriteByte(' ')
			}
			encodeOperand(b, item)
		}
		b.WriteByte(']')
	default:
		b.WriteString("null")
	}
}

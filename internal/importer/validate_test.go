package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intP(v int) *int       { return &v }
func strP(v string) *string { return &v }

func validSchema() Schema {
	return Schema{
		Board: BoardImport{Title: "Launch plan"},
		Lists: []ListImport{
			{Title: "Todo", Cards: []CardImport{{Title: "Draft copy"}, {Title: "Book venue"}}},
			{Title: "Done"},
		},
	}
}

func TestValidate_ValidSchema(t *testing.T) {
	assert.Empty(t, Validate(validSchema()))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Schema)
		key    string
		msg    string
	}{
		{"missing board title", func(s *Schema) { s.Board.Title = " " }, "board.title", "Title is required"},
		{"short list title", func(s *Schema) { s.Lists[1].Title = "ok" }, "lists.1.title", "Title is too short"},
		{"short card title", func(s *Schema) { s.Lists[0].Cards[1].Title = "x" }, "lists.0.cards.1.title", "Title is too short"},
		{"negative order", func(s *Schema) { s.Lists[0].Order = intP(-1) }, "lists.0.order", "Order must be zero or greater"},
		{"duplicate list order", func(s *Schema) {
			s.Lists[0].Order = intP(1)
			s.Lists[1].Order = intP(1)
		}, "lists.1.order", "Duplicate order"},
		{"duplicate card order", func(s *Schema) {
			s.Lists[0].Cards[0].Order = intP(0)
			s.Lists[0].Cards[1].Order = intP(0)
		}, "lists.0.cards.1.order", "Duplicate order"},
		{"short description", func(s *Schema) { s.Lists[0].Cards[0].Description = strP("tiny") }, "lists.0.cards.0.description", "Description is too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(&s)
			fe := Validate(s)
			assert.Contains(t, fe[tt.key], tt.msg)
		})
	}
}

func TestValidate_CardOrdersAreScopedToTheirList(t *testing.T) {
	s := validSchema()
	s.Lists[0].Cards[0].Order = intP(0)
	s.Lists[1].Cards = []CardImport{{Title: "Ship it", Order: intP(0)}}

	assert.Empty(t, Validate(s))
}

func TestValidate_BlankDescriptionIsAllowed(t *testing.T) {
	s := validSchema()
	s.Lists[0].Cards[0].Description = strP("  ")

	assert.Empty(t, Validate(s))
}

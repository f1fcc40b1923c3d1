package atom

import "strings"

// applyTag returns the style signature active inside an element, given the
// signature inherited from its ancestors.
func applyTag(s StyleSignature, name string, attrs []Attr) StyleSignature {
	switch name {
	case "b", "strong":
		s.Bold = true
	case "i", "em":
		s.Italic = true
	case "u":
		s.Underline = true
	}
	for _, a := range attrs {
		if a.Name == "style" {
			applyInlineStyle(&s, a.Value)
		}
	}
	return s
}

// applyInlineStyle folds the font-size and color declarations of a style
// attribute into the signature. Other declarations are cosmetic for diffing
// purposes and ignored.
func applyInlineStyle(s *StyleSignature, style string) {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		switch name {
		case "font-size":
			s.FontSize = value
		case "color":
			s.Color = value
		case "font-weight":
			if value == "bold" || value == "bolder" || value >= "600" && len(value) == 3 {
				s.Bold = true
			}
		case "font-style":
			if value == "italic" || value == "oblique" {
				s.Italic = true
			}
		case "text-decoration", "text-decoration-line":
			if strings.Contains(value, "underline") {
				s.Underline = true
			}
		}
	}
}

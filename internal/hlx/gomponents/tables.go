package gomponents

// htmlElementFunc maps a tag to its helper in maragu.dev/gomponents/html.
// Tags without a helper are built with g.El.
func htmlElementFunc(tag string) string {
	switch tag {
	case "a":
		return "A"
	case "article":
		return "Article"
	case "aside":
		return "Aside"
	case "body":
		return "Body"
	case "br":
		return "Br"
	case "button":
		return "Button"
	case "div":
		return "Div"
	case "footer":
		return "Footer"
	case "form":
		return "Form"
	case "h1":
		return "H1"
	case "h2":
		return "H2"
	case "h3":
		return "H3"
	case "h4":
		return "H4"
	case "h5":
		return "H5"
	case "h6":
		return "H6"
	case "head":
		return "Head"
	case "header":
		return "Header"
	case "hr":
		return "Hr"
	case "img":
		return "Img"
	case "input":
		return "Input"
	case "label":
		return "Label"
	case "li":
		return "Li"
	case "main":
		return "Main"
	case "nav":
		return "Nav"
	case "ol":
		return "Ol"
	case "option":
		return "Option"
	case "p":
		return "P"
	case "pre":
		return "Pre"
	case "section":
		return "Section"
	case "select":
		return "Select"
	case "span":
		return "Span"
	case "strong":
		return "Strong"
	case "table":
		return "Table"
	case "tbody":
		return "TBody"
	case "td":
		return "Td"
	case "textarea":
		return "Textarea"
	case "th":
		return "Th"
	case "thead":
		return "THead"
	case "tr":
		return "Tr"
	case "ul":
		return "Ul"
	default:
		return ""
	}
}

func htmlStringAttrFunc(key string) string {
	switch key {
	case "alt":
		return "Alt"
	case "class":
		return "Class"
	case "href":
		return "Href"
	case "id":
		return "ID"
	case "name":
		return "Name"
	case "placeholder":
		return "Placeholder"
	case "rel":
		return "Rel"
	case "src":
		return "Src"
	case "style":
		return "Style"
	case "target":
		return "Target"
	case "type":
		return "Type"
	case "value":
		return "Value"
	default:
		return ""
	}
}

func htmlBoolAttrFunc(key string) string {
	switch key {
	case "checked":
		return "Checked"
	case "disabled":
		return "Disabled"
	case "multiple":
		return "Multiple"
	case "required":
		return "Required"
	case "selected":
		return "Selected"
	default:
		return ""
	}
}

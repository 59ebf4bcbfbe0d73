package htmlutil

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form is a serialized html form, ready to be submitted.
type Form struct {
	Action *url.URL
	Method string
	Values url.Values
}

// ParseForm serializes the inputs of a form the way a browser would without
// pressing any submit button. The action is resolved against base, an empty
// action resolves to base itself.
func ParseForm(base *url.URL, form *goquery.Selection) (Form, error) {
	action, err := base.Parse(form.AttrOr("action", ""))
	if err != nil {
		return Form{}, err
	}
	method := strings.ToUpper(strings.TrimSpace(form.AttrOr("method", "")))
	if method == "" {
		method = "GET"
	}

	values := url.Values{}
	form.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		if _, disabled := s.Attr("disabled"); disabled {
			return
		}

		switch goquery.NodeName(s) {
		case "select":
			selected := s.Find("option[selected]").First()
			if selected.Length() == 0 {
				selected = s.Find("option").First()
			}
			if selected.Length() == 0 {
				return
			}
			values.Add(name, selected.AttrOr("value", selected.Text()))
			return
		case "textarea":
			values.Add(name, s.Text())
			return
		}

		switch strings.ToLower(s.AttrOr("type", "text")) {
		case "submit", "button", "image", "reset", "file":
			return
		case "checkbox", "radio":
			if _, checked := s.Attr("checked"); !checked {
				return
			}
			values.Add(name, s.AttrOr("value", "on"))
		default:
			values.Add(name, s.AttrOr("value", ""))
		}
	})

	return Form{
		Action: action,
		Method: method,
		Values: values,
	}, nil
}

// Press adds the name and value of a submit button to the form.
func (f Form) Press(button *goquery.Selection) {
	name, ok := button.Attr("name")
	if !ok || name == "" {
		return
	}
	f.Values.Set(name, button.AttrOr("value", ""))
}

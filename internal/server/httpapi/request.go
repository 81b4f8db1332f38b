package httpapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
)

// fields are the top-level values of a JSON or urlencoded request body.
// JSON numbers keep their literal text, other non-string values are
// rendered with fmt.Sprint; an unreadable body yields no fields.
type fields map[string]string

// interpolated returns the value spliced into a raw statement. An absent
// field renders as "undefined".
func (f fields) interpolated(key string) string {
	if v, ok := f[key]; ok {
		return v
	}
	return "undefined"
}

func readFields(r *http.Request) fields {
	out := fields{}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mt == "application/json" {
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return out
		}
		for k, v := range raw {
			switch v := v.(type) {
			case nil:
			case string:
				out[k] = v
			case json.Number:
				out[k] = v.String()
			default:
				out[k] = fmt.Sprint(v)
			}
		}
		return out
	}

	if err := r.ParseForm(); err != nil {
		return out
	}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// rawFileName returns the filename parameter exactly as the client sent it.
// multipart.Part.FileName is not used because it strips directories.
func rawFileName(p *multipart.Part) string {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}

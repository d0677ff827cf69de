package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Paths       map[string]any `json:"paths"`
		Definitions map[string]any `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}
	for _, p := range []string{"/dashboard", "/dashboard/calendar.ics", "/dashboard/insights"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	if _, ok := doc.Definitions["dashboard.Snapshot"]; !ok {
		t.Fatalf("missing Snapshot definition")
	}
}

type annotatedOp struct {
	description string
	params      map[string]string
}

var paramRe = regexp.MustCompile(`^(\S+) \S+ \S+ \S+ "(.*)"$`)

// handlerAnnotations lee las anotaciones swag de handler.go indexadas por ruta.
func handlerAnnotations(t *testing.T) map[string]annotatedOp {
	t.Helper()
	f, err := os.Open("../internal/domain/dashboard/handler.go")
	if err != nil {
		t.Fatalf("open handler: %v", err)
	}
	defer f.Close()

	out := map[string]annotatedOp{}
	cur := annotatedOp{params: map[string]string{}}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line, ok := strings.CutPrefix(sc.Text(), "// @")
		if !ok {
			continue
		}
		key, rest, _ := strings.Cut(line, " ")
		switch key {
		case "Description":
			cur.description = rest
		case "Param":
			if m := paramRe.FindStringSubmatch(rest); m != nil {
				cur.params[m[1]] = m[2]
			}
		case "Router":
			out[strings.Fields(rest)[0]] = cur
			cur = annotatedOp{params: map[string]string{}}
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan handler: %v", err)
	}
	return out
}

func TestSwaggerDocMatchesHandlerAnnotations(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var doc struct {
		Paths map[string]struct {
			Get struct {
				Description string `json:"description"`
				Parameters  []struct {
					Name        string `json:"name"`
					Description string `json:"description"`
				} `json:"parameters"`
			} `json:"get"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}

	ops := handlerAnnotations(t)
	if len(ops) == 0 {
		t.Fatalf("no annotated routes found in handler.go")
	}
	for path, op := range ops {
		p, ok := doc.Paths[path]
		if !ok {
			t.Errorf("%s: missing from doc", path)
			continue
		}
		if p.Get.Description != op.description {
			t.Errorf("%s: description drift\n doc: %s\n handler: %s", path, p.Get.Description, op.description)
		}
		for _, param := range p.Get.Parameters {
			if want, ok := op.params[param.Name]; !ok || want != param.Description {
				t.Errorf("%s: param %s drift\n doc: %q\n handler: %q", path, param.Name, param.Description, want)
			}
		}
		if len(p.Get.Parameters) != len(op.params) {
			t.Errorf("%s: doc has %d params, handler %d", path, len(p.Get.Parameters), len(op.params))
		}
	}
}

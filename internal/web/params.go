package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// maxBodySize bounds the body of table actions.
const maxBodySize = 64 << 10

var knownOperators = map[datatable.Operator]bool{
	datatable.OpContains:   true,
	datatable.OpEquals:     true,
	datatable.OpStartsWith: true,
	datatable.OpEndsWith:   true,
	datatable.OpGreater:    true,
	datatable.OpGreaterEq:  true,
	datatable.OpLess:       true,
	datatable.OpLessEq:     true,
}

// requestValues reads the form or JSON object body of r, plus its query,
// into a flat map. JSON values are converted with fmt.Sprint.
func requestValues(r *http.Request) (map[string]string, error) {
	out := make(map[string]string)
	for k := range r.URL.Query() {
		out[k] = r.URL.Query().Get(k)
	}
	if r.Body == nil {
		return out, nil
	}
	body := io.LimitReader(r.Body, maxBodySize)

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var obj map[string]any
		if err := json.NewDecoder(body).Decode(&obj); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		for k, v := range obj {
			if v != nil {
				out[k] = fmt.Sprint(v)
			}
		}
		return out, nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	for k := range form {
		out[k] = form.Get(k)
	}
	return out, nil
}

// parseFilterExpr splits "op:value". Text without a known operator
// prefix is a value for the column's default operator.
func parseFilterExpr(expr string) (datatable.Operator, string) {
	if op, value, ok := strings.Cut(expr, ":"); ok {
		if parsed := datatable.ParseOperator(op); knownOperators[parsed] {
			return parsed, value
		}
	}
	return "", expr
}

// filterFromValues builds the filter of column from a request.
// It accepts either filter=op:value or operator and value fields.
func filterFromValues(column string, values map[string]string) (datatable.Filter, error) {
	f := datatable.Filter{Column: column}
	if expr, ok := values["filter"]; ok {
		op, value := parseFilterExpr(expr)
		f.Operator, f.Value = op, value
		return f, nil
	}
	value, ok := values["value"]
	if !ok {
		return f, fmt.Errorf("%w: missing value for %s", errInvalidFilter, column)
	}
	f.Operator = datatable.ParseOperator(values["operator"])
	f.Value = value
	return f, nil
}

// applyQuery applies the one-shot state parameters of a GET request:
// search, filter[column]=op:value, sort, dir, pageSize and page.
func applyQuery(q url.Values, v *listView, maxPageSize int) error {
	if q.Has("search") {
		v.SetSearch(q.Get("search"))
	}

	for key, vals := range q {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		column := key[len("filter[") : len(key)-1]
		for _, expr := range vals {
			op, value := parseFilterExpr(expr)
			if err := v.SetFilter(datatable.Filter{Column: column, Operator: op, Value: value}); err != nil {
				return err
			}
		}
	}

	if q.Has("sort") {
		column := q.Get("sort")
		if column == "" {
			v.ClearSort()
		} else {
			dir := datatable.Direction(strings.ToLower(q.Get("dir")))
			if dir == "" {
				dir = datatable.Ascending
			}
			if err := v.SetSort(datatable.SortKey{Column: column, Direction: dir}); err != nil {
				return err
			}
		}
	}

	if q.Has("pageSize") {
		size, err := parsePageSize(q.Get("pageSize"), maxPageSize)
		if err != nil {
			return err
		}
		if err := v.SetPageSize(size); err != nil {
			return err
		}
	}

	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			return fmt.Errorf("%w: %q", datatable.ErrInvalidPage, q.Get("page"))
		}
		if err := v.SetPage(page); err != nil {
			return err
		}
	}
	return nil
}

func parsePageSize(s string, maxPageSize int) (int, error) {
	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", datatable.ErrInvalidPageSize, s)
	}
	if maxPageSize > 0 && size > maxPageSize {
		return 0, fmt.Errorf("%w: %d > %d", errPageSizeTooLarge, size, maxPageSize)
	}
	return size, nil
}

package instance

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"q.log/tableau/model"
)

type term struct {
	coef float64
	name string
}

// Parse reads a problem written as
//
//	min: + 3*x0 + 2*x1;
//	+ 1*x0 + 1*x1 >= 4;
//	+ 2*x0 + 1*x1 >= 6;
//
// The first statement is the objective, every following one a constraint.
// Blank lines and lines starting with // are skipped. Constraint terms are
// matched to objective variables by name.
func Parse(r io.Reader) (*model.Model, error) {
	sc := bufio.NewScanner(r)

	var (
		orient model.Orientation
		names  []string
		obj    []float64
		index  map[string]int
		rows   [][]float64
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if index == nil {
			var terms []term
			var err error
			orient, terms, err = parseObjective(lineNo, line)
			if err != nil {
				return nil, err
			}
			index = make(map[string]int, len(terms))
			for _, t := range terms {
				if _, dup := index[t.name]; dup {
					return nil, parseErrorf(lineNo, line, "variable %s appears twice", t.name)
				}
				index[t.name] = len(names)
				names = append(names, t.name)
				obj = append(obj, t.coef)
			}
			continue
		}

		row, err := parseConstraint(lineNo, line, index)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(ErrIO, "line %d: %v", lineNo+1, err)
	}
	if index == nil {
		return nil, &ParseError{Msg: "no objective found"}
	}

	m, err := model.FromRows(orient, obj, rows)
	if err != nil {
		return nil, err
	}
	m.Names = names
	return m, nil
}

func parseObjective(lineNo int, line string) (model.Orientation, []term, error) {
	var o model.Orientation
	head, body, ok := strings.Cut(line, ":")
	if !ok {
		return o, nil, parseErrorf(lineNo, line, "objective must start with min: or max:")
	}
	switch strings.ToLower(strings.TrimSpace(head)) {
	case "min":
		o = model.Minimize
	case "max":
		o = model.Maximize
	default:
		return o, nil, parseErrorf(lineNo, line, "unknown objective direction %q", head)
	}

	body, err := statement(lineNo, line, body)
	if err != nil {
		return o, nil, err
	}
	terms, err := parseTerms(lineNo, line, body)
	return o, terms, err
}

func parseConstraint(lineNo int, line string, index map[string]int) ([]float64, error) {
	body, err := statement(lineNo, line, line)
	if err != nil {
		return nil, err
	}
	lhs, rhs, ok := strings.Cut(body, ">=")
	if !ok {
		if strings.ContainsAny(body, "<=") {
			return nil, parseErrorf(lineNo, line, "only >= constraints are supported")
		}
		return nil, parseErrorf(lineNo, line, "missing >=")
	}

	terms, err := parseTerms(lineNo, line, lhs)
	if err != nil {
		return nil, err
	}
	if len(terms) != len(index) {
		return nil, parseErrorf(lineNo, line, "%d terms, objective has %d", len(terms), len(index))
	}

	row := make([]float64, len(index)+1)
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		col, known := index[t.name]
		if !known {
			return nil, parseErrorf(lineNo, line, "unknown variable %s", t.name)
		}
		if seen[t.name] {
			return nil, parseErrorf(lineNo, line, "variable %s appears twice", t.name)
		}
		seen[t.name] = true
		row[col] = t.coef
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	if err != nil {
		return nil, parseErrorf(lineNo, line, "right-hand side %q is not a number", strings.TrimSpace(rhs))
	}
	row[len(index)] = v
	return row, nil
}

// statement strips the terminating semicolon.
func statement(lineNo int, line, s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ";") {
		return "", parseErrorf(lineNo, line, "missing ;")
	}
	return strings.TrimSuffix(s, ";"), nil
}

// parseTerms reads a sequence of "+ coeff*name" terms.
func parseTerms(lineNo int, line, s string) ([]term, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return nil, parseErrorf(lineNo, line, "terms must start with +")
	}

	var terms []term
	for _, part := range strings.Split(s[1:], "+") {
		part = strings.TrimSpace(part)
		coef, name, ok := strings.Cut(part, "*")
		if !ok {
			return nil, parseErrorf(lineNo, line, "term %q is not coeff*var", part)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(coef), 64)
		if err != nil {
			return nil, parseErrorf(lineNo, line, "coefficient %q is not a number", strings.TrimSpace(coef))
		}
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			return nil, parseErrorf(lineNo, line, "bad variable name %q", name)
		}
		terms = append(terms, term{coef: c, name: name})
	}
	return terms, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

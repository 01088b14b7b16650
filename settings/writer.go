package settings

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const header = "#!/usr/bin/env python\n# -*- coding: utf-8 -*- #\nfrom __future__ import unicode_literals\n\n"

// Write emits m as assignment statements, one per setting, keys sorted.
// Parsing the output yields m again.
func Write(w io.Writer, m Map) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		if !IsSettingName(k) {
			return fmt.Errorf("settings: %q is not a setting name", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	for _, k := range keys {
		var sb strings.Builder
		if err := writeValue(&sb, m[k], true); err != nil {
			return fmt.Errorf("settings: %s: %w", k, err)
		}
		fmt.Fprintf(bw, "%s = %s\n", k, sb.String())
	}
	return bw.Flush()
}

func writeValue(sb *strings.Builder, v any, top bool) error {
	switch x := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if x {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case int:
		sb.WriteString(strconv.Itoa(x))
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return fmt.Errorf("%v has no literal form", x)
		}
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		sb.WriteString(s)
	case string:
		sb.WriteString(Quote(x))
	case []any:
		return writeSequence(sb, x, top)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Quote(k))
			sb.WriteString(": ")
			if err := writeValue(sb, x[k], false); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

// writeSequence writes a tuple. Top-level sequences of sequences, such as
// link lists, get one element per line.
func writeSequence(sb *strings.Builder, items []any, top bool) error {
	multiline := false
	if top && len(items) > 1 {
		for _, it := range items {
			if _, ok := it.([]any); ok {
				multiline = true
				break
			}
		}
	}

	sb.WriteByte('(')
	for i, it := range items {
		switch {
		case multiline:
			sb.WriteString("\n    ")
		case i > 0:
			sb.WriteString(", ")
		}
		if err := writeValue(sb, it, false); err != nil {
			return err
		}
		if multiline {
			sb.WriteByte(',')
		}
	}
	switch {
	case multiline:
		sb.WriteByte('\n')
	case len(items) == 1:
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return nil
}

// Quote returns s as a single-quoted literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

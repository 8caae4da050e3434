package refdata

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DumpFlags uint64

const (
	DumpHeaders = DumpFlags(1 << iota)
	DumpFields
	DumpRows

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the registry contents for debugging.
func (reg *Registry) Dump(f DumpFlags) string {
	var buf strings.Builder
	for _, name := range reg.names {
		reg.colls[name].dump(&buf, f)
	}
	return buf.String()
}

func (c *Collection) dump(w *strings.Builder, f DumpFlags) {
	prefix := c.schema.name

	if f.Contains(DumpHeaders) {
		fmt.Fprintln(w, dumpSep1)
		fmt.Fprintf(w, "%s (%d rows)\n", prefix, len(c.records))
	}
	if f.Contains(DumpFields) {
		var fields []string
		for _, name := range c.schema.order {
			fld := c.schema.fields[name]
			s := name
			if fld.typeTag != "" {
				s += ":" + fld.typeTag
			}
			if fld.hasDefault {
				s += fmt.Sprintf("=%v", fld.def)
			}
			fields = append(fields, s)
		}
		fmt.Fprintf(w, "%s.fields: %s\n", prefix, strings.Join(fields, ", "))
	}
	if f.Contains(DumpRows) {
		if f.Contains(DumpFields) {
			fmt.Fprintln(w, dumpSep2)
		}
		for pos, r := range c.records {
			fmt.Fprintf(w, "%s.%d = %s\n", prefix, pos+1, must(json.Marshal(r.Attributes())))
		}
	}
}

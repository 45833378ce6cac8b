// Package entrypoints parses the entry_points.txt file found in a
// distribution's *.dist-info directory.
//
// The file is INI formatted: each section is an entry point group
// (e.g. console_scripts) and each key maps an entry point name to an
// object reference of the form "module:attr [extras]".
package entrypoints

import (
	"strings"

	ini "gopkg.in/ini.v1"
)

// Parse parses entry_points.txt content into a mapping of group name to
// entry point name to object reference.
func Parse(text string) (map[string]map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters: "=",
	}, []byte(text))
	if err != nil {
		return nil, err
	}

	groups := make(map[string]map[string]string)
	for _, section := range f.Sections() {
		// The implicit DEFAULT section holds keys declared before any
		// group header; entry_points.txt never has those.
		if section.Name() == ini.DefaultSection {
			continue
		}
		group := make(map[string]string, len(section.Keys()))
		for _, key := range section.Keys() {
			group[key.Name()] = key.Value()
		}
		groups[section.Name()] = group
	}

	return groups, nil
}

// EntryPoint is a single named entry point within a group.
type EntryPoint struct {
	Name  string
	Group string
	Value string
}

// Module returns the module portion of the object reference.
func (e EntryPoint) Module() string {
	ref, _ := splitExtras(e.Value)
	mod, _, _ := strings.Cut(ref, ":")
	return strings.TrimSpace(mod)
}

// Attr returns the attribute portion of the object reference, or "" when
// the reference names a bare module.
func (e EntryPoint) Attr() string {
	ref, _ := splitExtras(e.Value)
	_, attr, _ := strings.Cut(ref, ":")
	return strings.TrimSpace(attr)
}

// Extras returns the extras listed in the object reference, if any.
func (e EntryPoint) Extras() []string {
	_, extras := splitExtras(e.Value)
	if extras == "" {
		return nil
	}
	parts := strings.Split(extras, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitExtras separates "module:attr [extra1,extra2]" into the object
// reference and the bracketed extras list.
func splitExtras(value string) (ref, extras string) {
	open := strings.LastIndexByte(value, '[')
	end := strings.LastIndexByte(value, ']')
	if open == -1 || end == -1 || end < open {
		return strings.TrimSpace(value), ""
	}
	return strings.TrimSpace(value[:open]), value[open+1 : end]
}

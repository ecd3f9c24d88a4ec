package formbridge

import "strings"

// ParseFilter parses a "Description (*.ext)|*.ext;*.ext2" filter list.
// Pairs repeat: "Logs (*.log)|*.log|All files (*.*)|*.*". Extensions are
// returned without "*." and a "*" extension matches every file.
func ParseFilter(spec string) []FileFilter {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}
	parts := strings.Split(spec, "|")
	filters := make([]FileFilter, 0, (len(parts)+1)/2)
	for i := 0; i < len(parts); i += 2 {
		desc := strings.TrimSpace(parts[i])
		var exts []string
		if i+1 < len(parts) {
			exts = parseExtensions(parts[i+1])
		} else {
			exts = extensionsFromDescription(desc)
		}
		if desc == "" && len(exts) == 0 {
			continue
		}
		filters = append(filters, FileFilter{Description: desc, Extensions: exts})
	}
	return filters
}

func parseExtensions(s string) []string {
	var exts []string
	for pattern := range strings.SplitSeq(s, ";") {
		pattern = strings.TrimSpace(pattern)
		pattern = strings.TrimPrefix(pattern, "*")
		pattern = strings.TrimPrefix(pattern, ".")
		if pattern == "" {
			continue
		}
		exts = append(exts, pattern)
	}
	return exts
}

// extensionsFromDescription reads the patterns of "Logs (*.log)" when the
// pattern half of a pair is missing.
func extensionsFromDescription(desc string) []string {
	open := strings.LastIndex(desc, "(")
	end := strings.LastIndex(desc, ")")
	if open < 0 || end <= open {
		return nil
	}
	return parseExtensions(strings.ReplaceAll(desc[open+1:end], ",", ";"))
}

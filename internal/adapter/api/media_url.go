package api

import "strings"

// NormalizeMediaURL resolves an image reference returned by the server to
// one absolute URL form. References may arrive absolute, root-relative, or
// root-relative already carrying the media prefix; the prefix is added only
// when missing, never duplicated.
func NormalizeMediaURL(base, prefix, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	if prefix != "" {
		prefix = "/" + strings.Trim(prefix, "/")
		if !strings.HasPrefix(ref, prefix+"/") && ref != prefix {
			ref = prefix + ref
		}
	}
	return base + ref
}

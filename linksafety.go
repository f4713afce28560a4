package sundown

// safeLinkSchemes and safeLinkPaths are the allowlist a link target must
// match to be considered "safe": a known absolute scheme, or an
// unambiguous relative path. This is grounded on the isSafeLink /
// validUris / validPaths logic found in the gomarkdown-lineage HTML
// renderer in the retrieval pack, which is itself a later fork of this
// same renderer's safelink check.
var safeLinkSchemes = []string{
	"http://",
	"https://",
	"ftp://",
	"mailto://",
}

var safeLinkPaths = []string{
	"/",
	"./",
	"../",
}

// isSafeLink reports whether link is safe to emit as an href/src target:
// used both by the bare-URL autolink scanner (always) and by the HTML
// renderer's Safelink option (optionally, for explicit links and
// autolinked tags).
func isSafeLink(link []byte) bool {
	for _, scheme := range safeLinkSchemes {
		if hasPrefixFold(link, scheme) {
			return true
		}
	}

	for _, p := range safeLinkPaths {
		if len(link) < len(p) || string(link[:len(p)]) != p {
			continue
		}

		rest := link[len(p):]
		if len(rest) == 0 || isAlnum(rest[0]) {
			return true
		}
	}

	return false
}

package issues

import (
	"strconv"
	"strings"
	"sync"
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

func getPathBuilder() *strings.Builder {
	sb := pathBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

func putPathBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	pathBuilderPool.Put(sb)
}

// FormatPath joins segments into a dotted document path. Segments are used
// verbatim, so a channel named "a.b" yields an ambiguous path.
func FormatPath(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	if len(segments) == 1 {
		return segments[0]
	}

	sb := getPathBuilder()
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	putPathBuilder(sb)
	return result
}

// IndexPath returns the path of element i of the sequence field under base,
// e.g. IndexPath("operations.send", "messages", 0) is "operations.send.messages[0]".
// An empty field indexes base itself.
func IndexPath(base, field string, i int) string {
	sb := getPathBuilder()
	sb.WriteString(base)
	if field != "" {
		if base != "" {
			sb.WriteByte('.')
		}
		sb.WriteString(field)
	}
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(i))
	sb.WriteByte(']')
	result := sb.String()
	putPathBuilder(sb)
	return result
}

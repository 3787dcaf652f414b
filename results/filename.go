package results

import "strings"

// FileInfo holds the file-related fields of a hit, with the best display
// name for the document in Filename.
type FileInfo struct {
	Filename            string
	FilePath            string
	MetadataStoragePath string
	MetadataStorageName string
	URL                 string
}

// Fields that may contain a file name or a path to the file, in order of preference.
var filenameFields = []string{"filename", "filepath", "metadata_storage_path", "path", "url"}

// ResolveFilename picks a display name for the document behind a hit.
//
// metadata_storage_name is used if set. Otherwise the first field that holds a
// bare file name wins, and only then is the last segment of a URL, Windows path
// or Unix path extracted. Filename is empty if no field produced a name.
func ResolveFilename(hit Hit) (fi FileInfo) {
	fi = FileInfo{
		FilePath:            hit.String("filepath"),
		MetadataStoragePath: hit.String("metadata_storage_path"),
		MetadataStorageName: hit.String("metadata_storage_name"),
		URL:                 hit.String("url"),
	}
	if fi.MetadataStorageName != "" {
		fi.Filename = fi.MetadataStorageName
		return fi
	}
	for _, field := range filenameFields {
		v := hit.String(field)
		if v != "" && !strings.ContainsAny(v, `/\`) {
			fi.Filename = v
			return fi
		}
	}
	for _, field := range filenameFields {
		if name := lastPathSegment(hit.String(field)); name != "" {
			fi.Filename = name
			return fi
		}
	}
	if _, ok := hit["metadata_storage_name"]; ok {
		fi.Filename = fi.MetadataStorageName
	}
	return fi
}

func lastPathSegment(p string) string {
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "http"):
		p, _, _ = strings.Cut(p, "?")
		return lastNonEmpty(strings.Split(p, "/"))
	case strings.Contains(p, `\`):
		return lastNonEmpty(strings.Split(p, `\`))
	case strings.Contains(p, "/"):
		return lastNonEmpty(strings.Split(p, "/"))
	}
	return ""
}

func lastNonEmpty(segments []string) string {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

package core

import (
	"regexp"
	"strings"
)

// commonTLDs distinguishes web domains from local filenames in the bare
// "name.ext" case.
var commonTLDs = map[string]bool{
	// generic
	"com": true, "org": true, "net": true, "edu": true, "gov": true, "mil": true,
	"int": true, "biz": true, "info": true, "name": true, "pro": true,
	"museum": true, "coop": true, "aero": true, "post": true, "geo": true,
	"kid": true, "law": true, "mail": true, "sco": true, "web": true,
	// country
	"cn": true, "uk": true, "de": true, "fr": true, "jp": true, "au": true,
	"ca": true, "ru": true, "in": true, "br": true, "it": true, "es": true,
	"nl": true, "us": true, "eu": true, "me": true, "cc": true, "la": true,
	"pw": true, "mobi": true,
	// newer generic
	"app": true, "dev": true, "io": true, "ai": true, "co": true, "tv": true,
	"xyz": true, "online": true, "site": true, "store": true, "tech": true,
	"cloud": true, "space": true, "blog": true, "news": true, "wiki": true,
	"shop": true, "bank": true, "sport": true, "game": true, "music": true,
	"movie": true, "photo": true, "art": true, "design": true, "studio": true,
	"today": true, "world": true,
}

// localFileExts are extensions that are definitely not TLDs.
var localFileExts = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true, "txt": true, "md": true, "markdown": true,
	"rtf": true, "log": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"svg": true, "webp": true,
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true, "iso": true,
	"exe": true, "dll": true, "bin": true, "apk": true, "pkg": true,
	"mp3": true, "wav": true, "flac": true, "mp4": true, "avi": true,
	"mkv": true, "mov": true,
	"css": true, "js": true, "json": true, "xml": true, "html": true, "htm": true,
	"py": true, "java": true, "cpp": true, "c": true, "h": true, "go": true,
	"rs": true, "ts": true, "sh": true,
	"tmp": true, "bak": true, "old": true, "swp": true, "lock": true,
}

var (
	privateIPRe = regexp.MustCompile(
		`\b127\.0\.0\.1\b` +
			`|\b192\.168\.\d+\.\d+\b` +
			`|\b10\.\d+\.\d+\.\d+\b` +
			`|\b172\.(1[6-9]|2[0-9]|3[01])\.\d+\.\d+\b`)

	// Bare "name.ext": single segment, no slash.
	bareFileRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*\.([a-zA-Z0-9]{2,6})$`)

	// Strict multi-label domain: hyphenated alphanumeric labels, alphabetic
	// final label, optional port and path.
	domainRe = regexp.MustCompile(`(?i)^` +
		`(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)*` +
		`[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?` +
		`\.` +
		`[a-z](?:[a-z0-9-]{0,61}[a-z0-9])?` +
		`(?::\d{1,5})?` +
		`(?:/[^\s]*)?$`)
)

// IsWebLink reports whether a link string denotes a remote web resource
// rather than a local file. The check order matters: local schemes and
// private addresses are excluded before protocol prefixes are trusted, and
// the bare-filename heuristic runs before the general domain grammar so
// "report.pdf" is never taken for a two-label domain.
func IsWebLink(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" {
		return false
	}

	// Local schemes and private network addresses.
	if strings.HasPrefix(link, "obsidian:") ||
		strings.HasPrefix(link, "file:") ||
		strings.Contains(strings.ToLower(link), "localhost") ||
		privateIPRe.MatchString(link) {
		return false
	}

	// Explicit web protocols.
	for _, p := range []string{"http://", "https://", "ftp://", "mailto:", "tel:"} {
		if strings.HasPrefix(link, p) {
			return true
		}
	}

	// Protocol-relative.
	if strings.HasPrefix(link, "//") {
		return true
	}

	// Path shapes are local.
	if strings.HasPrefix(link, "./") || strings.HasPrefix(link, "../") ||
		strings.HasPrefix(link, "/") || strings.Contains(link, `\`) {
		return false
	}

	// Bare filename vs bare domain.
	if m := bareFileRe.FindStringSubmatch(link); m != nil {
		ext := strings.ToLower(m[1])
		if localFileExts[ext] {
			return false
		}
		if commonTLDs[ext] {
			return true
		}
		// Ambiguous single word with dot: conservatively local.
		return false
	}

	// Strict domain grammar with a known TLD.
	if domainRe.MatchString(link) {
		host := link
		if i := strings.IndexAny(host, ":/"); i >= 0 {
			host = host[:i]
		}
		labels := strings.Split(host, ".")
		if commonTLDs[strings.ToLower(labels[len(labels)-1])] {
			return true
		}
	}

	return false
}

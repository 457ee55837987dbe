package navigation

import "net/url"

// PostParam is the query parameter carrying the shared post id.
const PostParam = "post"

// Location is the address of the client, the shareable part of its state.
type Location struct {
	u url.URL
}

// ParseLocation parses raw; an empty or invalid raw yields "/".
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return Location{u: url.URL{Path: "/"}}
	}
	return Location{u: *u}
}

// Post returns the shared post id, "" when absent.
func (l Location) Post() string {
	return l.u.Query().Get(PostParam)
}

func (l Location) WithPost(id string) Location {
	q := l.u.Query()
	if id == "" {
		q.Del(PostParam)
	} else {
		q.Set(PostParam, id)
	}
	l.u.RawQuery = q.Encode()
	return l
}

func (l Location) WithoutPost() Location {
	return l.WithPost("")
}

// ShareURL is the absolute address that reopens post id.
func (l Location) ShareURL(id string) string {
	return l.WithPost(id).String()
}

func (l Location) String() string {
	return l.u.String()
}

package render

import "time"

type Renderer interface {
	RenderEntryList(view EntryListView) string
}

type EntryListView struct {
	Items []EntryListItem
}

type EntryListItem struct {
	Name          string
	Type          string
	LatestVersion int
	VersionCount  int
	Timestamp     time.Time
}

func (v EntryListView) IsEmpty() bool {
	return len(v.Items) == 0
}

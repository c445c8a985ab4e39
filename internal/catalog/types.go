package catalog

import (
	"errors"
	"strings"
)

// InnerTube request payload.
type searchRequest struct {
	Context requestContext `json:"context"`
	Query   string         `json:"query"`
	Params  string         `json:"params"`
}

type requestContext struct {
	Client requestClient `json:"client"`
}

type requestClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
}

// InnerTube response, reduced to the renderers a song shelf uses. Nothing
// from here leaves the package: candidates() converts it to Candidate.
type searchResponse struct {
	Contents struct {
		TabbedSearchResultsRenderer *struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer *sectionList `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
		SectionListRenderer *sectionList `json:"sectionListRenderer"`
	} `json:"contents"`
}

type sectionList struct {
	Contents []struct {
		MusicShelfRenderer *struct {
			Contents []struct {
				Item *listItem `json:"musicResponsiveListItemRenderer"`
			} `json:"contents"`
		} `json:"musicShelfRenderer"`
	} `json:"contents"`
}

type listItem struct {
	FlexColumns []struct {
		Renderer struct {
			Text struct {
				Runs []run `json:"runs"`
			} `json:"text"`
		} `json:"musicResponsiveListItemFlexColumnRenderer"`
	} `json:"flexColumns"`
	PlaylistItemData *struct {
		VideoID string `json:"videoId"`
	} `json:"playlistItemData"`
	Overlay *struct {
		Thumbnail struct {
			Content struct {
				PlayButton struct {
					Endpoint navigationEndpoint `json:"playNavigationEndpoint"`
				} `json:"musicPlayButtonRenderer"`
			} `json:"content"`
		} `json:"musicItemThumbnailOverlayRenderer"`
	} `json:"overlay"`
}

type run struct {
	Text     string              `json:"text"`
	Endpoint *navigationEndpoint `json:"navigationEndpoint"`
}

type navigationEndpoint struct {
	WatchEndpoint *struct {
		VideoID string `json:"videoId"`
	} `json:"watchEndpoint"`
	BrowseEndpoint *struct {
		BrowseID string `json:"browseId"`
	} `json:"browseEndpoint"`
}

const runSeparator = " • "

// Runs that join artist names rather than name an artist.
var artistJoiners = map[string]bool{
	", ":    true,
	" & ":   true,
	" and ": true,
}

// Leading type labels some layouts put before the artists.
var typeLabels = map[string]bool{
	"Song": true,
}

var errUnexpectedShape = errors.New("unexpected search response shape")

// candidates converts the renderer tree into ranked candidates, dropping
// entries without a title or video id and keeping at most PageSize.
func (r *searchResponse) candidates() ([]Candidate, error) {
	var list *sectionList
	switch {
	case r.Contents.TabbedSearchResultsRenderer != nil:
		tabs := r.Contents.TabbedSearchResultsRenderer.Tabs
		if len(tabs) == 0 {
			return nil, errUnexpectedShape
		}
		list = tabs[0].TabRenderer.Content.SectionListRenderer
	case r.Contents.SectionListRenderer != nil:
		list = r.Contents.SectionListRenderer
	default:
		return nil, errUnexpectedShape
	}

	candidates := []Candidate{}
	if list == nil {
		return candidates, nil
	}

	for _, section := range list.Contents {
		if section.MusicShelfRenderer == nil {
			continue
		}
		for _, entry := range section.MusicShelfRenderer.Contents {
			if entry.Item == nil {
				continue
			}
			c, ok := entry.Item.candidate()
			if !ok {
				continue
			}
			candidates = append(candidates, c)
			if len(candidates) == PageSize {
				return candidates, nil
			}
		}
	}
	return candidates, nil
}

func (it *listItem) candidate() (Candidate, bool) {
	title := strings.TrimSpace(it.columnText(0))
	id := it.videoID()
	if title == "" || id == "" {
		return Candidate{}, false
	}

	var artists []string
	if len(it.FlexColumns) > 1 {
		artists = parseArtists(it.FlexColumns[1].Renderer.Text.Runs)
	}

	return Candidate{
		Title:    title,
		Artists:  artists,
		SourceID: id,
	}, true
}

func (it *listItem) columnText(i int) string {
	if i >= len(it.FlexColumns) {
		return ""
	}
	var b strings.Builder
	for _, r := range it.FlexColumns[i].Renderer.Text.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (it *listItem) videoID() string {
	if it.PlaylistItemData != nil && it.PlaylistItemData.VideoID != "" {
		return it.PlaylistItemData.VideoID
	}
	if len(it.FlexColumns) > 0 {
		for _, r := range it.FlexColumns[0].Renderer.Text.Runs {
			if r.Endpoint != nil && r.Endpoint.WatchEndpoint != nil && r.Endpoint.WatchEndpoint.VideoID != "" {
				return r.Endpoint.WatchEndpoint.VideoID
			}
		}
	}
	if it.Overlay != nil {
		if we := it.Overlay.Thumbnail.Content.PlayButton.Endpoint.WatchEndpoint; we != nil {
			return we.VideoID
		}
	}
	return ""
}

// parseArtists reads the artist names from the second flex column. Artists
// come before the first " • " separator, after an optional type label, with
// joiner runs between them; album and duration follow and are ignored.
func parseArtists(runs []run) []string {
	artists := []string{}
	for i, r := range runs {
		if r.Text == runSeparator {
			if len(artists) > 0 {
				break
			}
			continue
		}
		if artistJoiners[r.Text] {
			continue
		}
		if len(artists) == 0 && r.Endpoint == nil && typeLabels[r.Text] && i+1 < len(runs) {
			continue
		}
		name := strings.TrimSpace(r.Text)
		if name != "" {
			artists = append(artists, name)
		}
	}
	return artists
}

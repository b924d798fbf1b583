package format

import (
	"fmt"
	"sort"

	"github.com/tgrab/tgrab/internal/model"
)

// Limits and selector templates
const (
	// MaxHeightChoices caps the number of height-based buttons per item.
	MaxHeightChoices = 10

	// HeightSelectorTemplate prefers merged video+audio at the exact height,
	// falling back to the best single stream at that height.
	HeightSelectorTemplate = "bv*[height=%d]+ba/b[height=%d]"
	HeightLabelTemplate    = "%dp"

	// FallbackSelector is the catch-all "best available" choice.
	FallbackSelector = "bv*+ba/best"
	FallbackLabel    = "Лучшее доступное"
)

// Thumbnail scoring weights
const (
	thumbHeightWeight = 10
)

// Choices turns raw media metadata into the ordered list of quality choices
// shown to the user. One choice per distinct video height, highest first,
// capped at MaxHeightChoices, plus the catch-all which is always present and
// always last. The returned list is never empty and all selectors within it
// are distinct.
func Choices(info *model.MediaInfo) []model.FormatChoice {
	heights := collectHeights(info)

	choices := make([]model.FormatChoice, 0, len(heights)+1)
	for i, h := range heights {
		if i >= MaxHeightChoices {
			break
		}
		choices = append(choices, model.FormatChoice{
			Selector: fmt.Sprintf(HeightSelectorTemplate, h, h),
			Label:    fmt.Sprintf(HeightLabelTemplate, h),
		})
	}

	choices = append(choices, model.FormatChoice{
		Selector: FallbackSelector,
		Label:    FallbackLabel,
	})

	return choices
}

// BestThumbnail picks the preview image for a media item. An explicit single
// thumbnail wins; otherwise the candidate maximizing height*10 + preference,
// first maximizer on ties. Candidates without a URL are ignored. Returns ""
// when there is nothing usable.
func BestThumbnail(info *model.MediaInfo) string {
	if info.ThumbnailURL != "" {
		return info.ThumbnailURL
	}

	best := ""
	bestScore := -1
	for _, t := range info.Thumbnails {
		if t.URL == "" {
			continue
		}
		score := t.Height*thumbHeightWeight + t.Preference
		if score > bestScore {
			best = t.URL
			bestScore = score
		}
	}
	return best
}

// collectHeights returns the distinct heights of video-bearing streams,
// sorted descending.
func collectHeights(info *model.MediaInfo) []int {
	seen := make(map[int]bool)
	for _, f := range info.Formats {
		if f.HasVideo() && f.Height > 0 {
			seen[f.Height] = true
		}
	}

	heights := make([]int, 0, len(seen))
	for h := range seen {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))
	return heights
}

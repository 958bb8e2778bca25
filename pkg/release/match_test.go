package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC) }
}

func TestMatcher_Matches(t *testing.T) {
	tests := []struct {
		name     string
		expected MatchInput
		release  string
		want     bool
	}{
		{
			name:     "exact movie match",
			expected: MatchInput{Title: "Severance", Year: 2025, IsMovie: true},
			release:  "Severance.2025.1080p.WEB-DL.DDP5.1.H.264-GRP",
			want:     true,
		},
		{
			name:     "title hijack rejection",
			expected: MatchInput{Title: "Masters of the Universe", Year: 2025, IsMovie: true},
			release:  "He-Man.and.the.Masters.of.the.Universe.2021.1080p.WEB",
			want:     false,
		},
		{
			name:     "tv release offered for movie",
			expected: MatchInput{Title: "Severance", Year: 2025, IsMovie: true},
			release:  "Severance.S02E03.1080p.WEB",
			want:     false,
		},
		{
			name:     "year out of window",
			expected: MatchInput{Title: "Arrival", Year: 2016, IsMovie: true},
			release:  "Arrival.2020.1080p.BluRay",
			want:     false,
		},
		{
			name:     "missing year accepted when expected year already passed",
			expected: MatchInput{Title: "Arrival", Year: 2016, IsMovie: true},
			release:  "Arrival.1080p.BluRay",
			want:     true,
		},
		{
			name:     "missing year rejected when expected year is upcoming",
			expected: MatchInput{Title: "Avatar Fire and Ash", Year: 2027, IsMovie: true},
			release:  "Avatar.Fire.and.Ash.1080p.WEB-DL",
			want:     false,
		},
		{
			name:     "series episode match has no year gate",
			expected: MatchInput{Title: "Severance", IsMovie: false},
			release:  "Severance.S02E03.1080p.WEB",
			want:     true,
		},
		{
			name:     "single-edit spelling drift still matches",
			expected: MatchInput{Title: "The Colour Room", Year: 2021, IsMovie: true},
			release:  "The.Color.Room.2021.1080p.WEB-DL",
			want:     true,
		},
		{
			name:     "short words never blur together",
			expected: MatchInput{Title: "Heat", Year: 1995, IsMovie: true},
			release:  "Beat.1995.1080p.BluRay",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Matcher{Now: fixedClock(2026)}
			got := m.Matches(tt.expected, tt.release)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		name string
		p    Parsed
		want string
	}{
		{"webdl 1080p", Parsed{Source: "WEBDL", Resolution: "1080p"}, "WEBDL-1080p"},
		{"default resolution", Parsed{Source: "Bluray"}, "Bluray-1080p"},
		{"low quality cam", Parsed{Source: "cam"}, "CAM"},
		{"remux 2160p", Parsed{Source: "remux", Resolution: "2160p"}, "Remux-2160p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quality(tt.p))
		})
	}
}

func TestIsProperOrRepack(t *testing.T) {
	assert.True(t, IsProperOrRepack("Show.S01E02.1080p.WEB-DL.PROPER-GRP"))
	assert.True(t, IsProperOrRepack("Show.S01E02.1080p.REPACK-GRP"))
	assert.True(t, IsProperOrRepack("/library/Show/Season 01/Show.S01E02.RERIP.mkv"))
	assert.False(t, IsProperOrRepack("Show.S01E02.1080p.WEB-DL-GRP"))
}

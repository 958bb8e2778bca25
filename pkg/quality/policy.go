package quality

import "strings"

// Policy evaluates a quality string against a profile using a weight table.
type Policy struct {
	Table *Table
}

// NewPolicy builds a Policy over the given weight table.
func NewPolicy(table *Table) *Policy {
	return &Policy{Table: table}
}

// MeetsProfile reports whether quality is allowed by the profile: a direct
// match against an allowed item, or (failing that) a match on the
// normalized group of both the candidate and every allowed item.
func (p *Policy) MeetsProfile(profile Profile, quality string) bool {
	for _, item := range profile.Items {
		if !item.Allowed {
			continue
		}
		if strings.EqualFold(item.Quality, quality) {
			return true
		}
	}

	group := Group(quality)
	for _, item := range profile.Items {
		if !item.Allowed {
			continue
		}
		if strings.EqualFold(Group(item.Quality), group) {
			return true
		}
	}

	return false
}

// MeetsCutoff reports whether quality's weight has reached the profile's
// cutoff weight. Unresolvable weights are conservatively treated as not
// meeting cutoff, so an item is never silently unmonitored.
func (p *Policy) MeetsCutoff(profile Profile, quality string) bool {
	qw, ok := p.Table.Weight(quality)
	if !ok {
		return false
	}
	cw, ok := p.Table.Weight(profile.Cutoff)
	if !ok {
		return false
	}
	return qw >= cw && qw > 0 && cw > 0
}

// ShouldUpgrade runs the full upgrade decision algorithm from current to
// candidate under the profile's policy and proper/repack flags.
func (p *Policy) ShouldUpgrade(profile Profile, current, candidate string, flags UpgradeFlags) bool {
	if !profile.UpgradeAllowed {
		return false
	}

	currentGroup := Group(current)
	candidateGroup := Group(candidate)

	cw, cwOK := p.Table.Weight(currentGroup)
	nw, nwOK := p.Table.Weight(candidateGroup)
	kw, kwOK := p.Table.Weight(Group(profile.Cutoff))

	if !cwOK || !nwOK {
		return false
	}

	if nw < cw {
		return false
	}

	if nw == cw {
		if flags.CurrentIsProperOrRepack {
			return false
		}
		if flags.CandidateIsProperOrRepack &&
			(profile.PropersPreference == PreferAndUpgrade || profile.PropersPreference == DoNotPrefer) {
			return p.MeetsProfile(profile, candidate)
		}
		return false
	}

	if kwOK && cw >= kw {
		return false
	}

	if nw > cw && p.MeetsProfile(profile, candidate) {
		return true
	}

	return false
}

package domain

import (
	"fmt"
	"strings"
)

// ChannelGroupSeparator joins channel names of one group on the command line,
// e.g. "C3-M2++EOG".
const ChannelGroupSeparator = "++"

// ChannelGroup is an ordered set of channels scored together as one model input.
type ChannelGroup []string

type ChannelGroups []ChannelGroup

// ChannelAssignment pairs a channel with the index of the group that owns it.
type ChannelAssignment struct {
	Channel    string `json:"channel"`
	GroupIndex int    `json:"group_index"`
}

// Assignments flattens the groups in group-then-channel order so the server
// can rebuild group membership.
func (g ChannelGroups) Assignments() []ChannelAssignment {
	out := make([]ChannelAssignment, 0, g.channelCount())
	for groupIdx, group := range g {
		for _, channel := range group {
			out = append(out, ChannelAssignment{Channel: channel, GroupIndex: groupIdx})
		}
	}
	return out
}

func (g ChannelGroups) channelCount() int {
	n := 0
	for _, group := range g {
		n += len(group)
	}
	return n
}

func (g ChannelGroups) String() string {
	parts := make([]string, 0, len(g))
	for _, group := range g {
		parts = append(parts, strings.Join(group, ChannelGroupSeparator))
	}
	return strings.Join(parts, " ")
}

// ParseChannelGroups parses CLI arguments of the form "C3-M2++EOG".
func ParseChannelGroups(raw []string) (ChannelGroups, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	groups := make(ChannelGroups, 0, len(raw))
	for _, entry := range raw {
		var group ChannelGroup
		for _, channel := range strings.Split(entry, ChannelGroupSeparator) {
			channel = strings.TrimSpace(channel)
			if channel == "" {
				return nil, fmt.Errorf("invalid channel group %q: empty channel name", entry)
			}
			group = append(group, channel)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// InferChannelGroups builds every combination of channels whose inferred type
// matches the required type of each slot. Combinations follow lexicographic
// product order over the per-slot candidates and are truncated to maxGroups, so
// a maximum of zero or less yields no groups. A slot without candidates yields
// no groups.
func InferChannelGroups(channels, channelTypes, requiredTypes []string, maxGroups int) ChannelGroups {
	if len(requiredTypes) == 0 || maxGroups <= 0 {
		return ChannelGroups{}
	}

	candidates := make([][]string, len(requiredTypes))
	for slot, required := range requiredTypes {
		for i, channel := range channels {
			if i >= len(channelTypes) {
				break
			}
			if strings.EqualFold(strings.TrimSpace(channelTypes[i]), strings.TrimSpace(required)) {
				candidates[slot] = append(candidates[slot], channel)
			}
		}
		if len(candidates[slot]) == 0 {
			return ChannelGroups{}
		}
	}

	groups := ChannelGroups{}
	indices := make([]int, len(candidates))
	for {
		if len(groups) >= maxGroups {
			return groups
		}

		group := make(ChannelGroup, len(candidates))
		for slot, idx := range indices {
			group[slot] = candidates[slot][idx]
		}
		groups = append(groups, group)

		// advance the rightmost slot first, odometer style
		slot := len(indices) - 1
		for slot >= 0 {
			indices[slot]++
			if indices[slot] < len(candidates[slot]) {
				break
			}
			indices[slot] = 0
			slot--
		}
		if slot < 0 {
			return groups
		}
	}
}

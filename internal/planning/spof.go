package planning

import (
	"slices"
	"strings"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// SkillHolder names the only resource holding a skill.
type SkillHolder struct {
	Skill        string `json:"skill"`
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name"`
	TeamID       string `json:"team_id"`
}

// SinglePointsOfFailure returns the skills held by exactly one resource,
// sorted by skill. Skills compare case-insensitively.
func SinglePointsOfFailure(resources []model.Resource) []SkillHolder {
	holders := make(map[string][]int)
	for i, r := range resources {
		seen := make(map[string]bool, len(r.Skills))
		for _, skill := range r.Skills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			holders[key] = append(holders[key], i)
		}
	}

	out := []SkillHolder{}
	for skill, idx := range holders {
		if len(idx) != 1 {
			continue
		}
		r := resources[idx[0]]
		out = append(out, SkillHolder{Skill: skill, ResourceID: r.ID, ResourceName: r.Name, TeamID: r.TeamID})
	}
	slices.SortFunc(out, func(a, b SkillHolder) int { return strings.Compare(a.Skill, b.Skill) })
	return out
}

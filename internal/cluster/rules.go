package cluster

import (
	"strings"

	"proxboard/internal/model"
)

const (
	tagAffinity     = "plb_affinity_"
	tagAntiAffinity = "plb_anti_affinity_"
	tagIgnore       = "plb_ignore_"
	tagPin          = "plb_pin_"
)

// BuildRules projects guest tags into the rule groups the balancer
// honors. Tags are semicolon separated on each guest; unrecognized tags
// are skipped.
func BuildRules(guests []model.GuestInfo, pools map[string]interface{}) model.BalancingRules {
	rules := model.BalancingRules{
		Affinity:     map[string][]model.RuleGuest{},
		AntiAffinity: map[string][]model.RuleGuest{},
		Ignored:      []model.IgnoredGuest{},
		Pinned:       map[string][]model.PinnedGuest{},
		Pools:        pools,
	}
	if rules.Pools == nil {
		rules.Pools = map[string]interface{}{}
	}

	for _, guest := range guests {
		if guest.Tags == "" {
			continue
		}
		for _, tag := range strings.Split(guest.Tags, ";") {
			tag = strings.TrimSpace(tag)
			switch {
			case strings.HasPrefix(tag, tagAntiAffinity):
				group := strings.TrimPrefix(tag, tagAntiAffinity)
				rules.AntiAffinity[group] = append(rules.AntiAffinity[group], ruleGuest(guest))
			case strings.HasPrefix(tag, tagAffinity):
				group := strings.TrimPrefix(tag, tagAffinity)
				rules.Affinity[group] = append(rules.Affinity[group], ruleGuest(guest))
			case strings.HasPrefix(tag, tagIgnore):
				rules.Ignored = append(rules.Ignored, model.IgnoredGuest{
					VMID: guest.VMID,
					Name: guest.Name,
					Node: guest.Node,
					Tag:  tag,
				})
			case strings.HasPrefix(tag, tagPin):
				node := strings.TrimPrefix(tag, tagPin)
				rules.Pinned[node] = append(rules.Pinned[node], model.PinnedGuest{
					VMID:        guest.VMID,
					Name:        guest.Name,
					CurrentNode: guest.Node,
				})
			}
		}
	}
	return rules
}

func ruleGuest(guest model.GuestInfo) model.RuleGuest {
	return model.RuleGuest{VMID: guest.VMID, Name: guest.Name, Node: guest.Node}
}

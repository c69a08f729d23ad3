package robots

import (
	"net/url"
	"strings"
)

// decideFromRuleSet applies the matched ruleSet to target, implementing
// the standard robots.txt precedence: the longest matching rule wins,
// and an allow rule wins ties against a disallow rule of equal length.
func decideFromRuleSet(rs ruleSet, target url.URL) Decision {
	if !rs.hasGroups {
		return Decision{Url: target, Allowed: true, Reason: EmptyRuleSet}
	}
	if !rs.matchedGroup {
		return Decision{Url: target, Allowed: true, Reason: NoMatchingRules}
	}

	path := target.Path
	if path == "" {
		path = "/"
	}

	bestAllow := -1
	for _, rule := range rs.AllowRules() {
		if matchesRobotsPattern(path, rule.Prefix()) && len(rule.Prefix()) > bestAllow {
			bestAllow = len(rule.Prefix())
		}
	}

	bestDisallow := -1
	for _, rule := range rs.DisallowRules() {
		if matchesRobotsPattern(path, rule.Prefix()) && len(rule.Prefix()) > bestDisallow {
			bestDisallow = len(rule.Prefix())
		}
	}

	decision := Decision{Url: target}
	if crawlDelay := rs.CrawlDelay(); crawlDelay != nil {
		decision.CrawlDelay = *crawlDelay
	}

	switch {
	case bestDisallow > bestAllow && bestDisallow >= 0:
		decision.Allowed = false
		decision.Reason = DisallowedByRobots
	case bestAllow >= 0:
		decision.Allowed = true
		decision.Reason = AllowedByRobots
	default:
		decision.Allowed = true
		decision.Reason = NoMatchingRules
	}

	return decision
}

// matchesRobotsPattern matches path against a robots.txt allow/disallow
// pattern. "*" matches any run of characters (including none); a
// trailing "$" anchors the match to the end of path.
func matchesRobotsPattern(path string, pattern string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = pattern[:len(pattern)-1]
	}

	segments := strings.Split(pattern, "*")
	pos := 0
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		idx := strings.Index(path[pos:], seg)
		if idx == -1 {
			return false
		}
		if i == 0 && idx != 0 {
			return false
		}
		pos += idx + len(seg)
	}

	if anchored && pos != len(path) {
		return false
	}

	return true
}

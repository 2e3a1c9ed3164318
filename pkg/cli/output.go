package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode JSON output")
	}
	return nil
}

func riskColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelCritical:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelHigh:
		return color.New(color.FgRed)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func renderNotFound(w io.Writer, kind, id string) {
	color.New(color.Faint).Fprintf(w, "%s %q: insufficient data to assess\n", kind, id)
}

func renderReport(w io.Writer, result *model.OrganizationBusFactor) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "Organization %s\n", result.OrganizationID)
	fmt.Fprintf(w, "  Bus factor:          %d (", result.OverallBusFactor)
	riskColor(result.RiskLevel).Fprint(w, result.RiskLevel)
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  Distribution score:  %.1f / 100\n", result.KnowledgeDistributionScore)
	fmt.Fprintf(w, "  Analyzed at:         %s\n\n", result.AnalyzedAt.Format("2006-01-02 15:04 MST"))

	if len(result.DomainScores) > 0 {
		bold.Fprintln(w, "Domains")
		for _, score := range result.DomainScores {
			fmt.Fprintf(w, "  %-32s bus factor %d  ", score.DomainName, score.BusFactor)
			riskColor(score.RiskLevel).Fprint(w, score.RiskLevel)
			fmt.Fprintf(w, "  coverage %.0f%%\n", score.Coverage*100)
		}
		fmt.Fprintln(w)
	}

	if len(result.SinglePointsOfFailure) > 0 {
		bold.Fprintln(w, "Single points of failure")
		for _, spof := range result.SinglePointsOfFailure {
			name := spof.Name
			if name == "" {
				name = spof.PersonID.String()
			}
			fmt.Fprintf(w, "  %-24s ", name)
			if spof.Criticality == types.CriticalityCritical {
				color.New(color.FgRed, color.Bold).Fprint(w, spof.Criticality)
			} else {
				color.New(color.FgRed).Fprint(w, spof.Criticality)
			}
			fmt.Fprintf(w, "  unique in: %s\n", joinStrings(spof.UniqueDomains))
			fmt.Fprintf(w, "    %s\n", spof.ImpactIfLost.Description)
		}
		fmt.Fprintln(w)
	}

	if len(result.Recommendations) > 0 {
		bold.Fprintln(w, "Recommendations")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

func renderPerson(w io.Writer, profile *model.PersonKnowledge) {
	bold := color.New(color.Bold)

	name := profile.Name
	if name == "" {
		name = profile.PersonID.String()
	}
	bold.Fprintf(w, "%s", name)
	if profile.Department != "" {
		fmt.Fprintf(w, "  (%s)", profile.Department)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Overall knowledge:  %.1f\n", profile.OverallKnowledgeScore)
	fmt.Fprintf(w, "  Unique domains:     %d\n", profile.UniqueKnowledgeCount)
	fmt.Fprintf(w, "  Criticality:        %s\n", profile.Criticality)

	if len(profile.Domains) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Domains")
		for _, de := range profile.Domains {
			marker := " "
			if de.IsUniqueExpert {
				marker = "U"
			} else if de.IsPrimaryExpert {
				marker = "P"
			}
			fmt.Fprintf(w, "  [%s] %-32s %.1f\n", marker, de.DomainName, de.ExpertiseScore)
		}
	}
}

func renderDomainScore(w io.Writer, score *model.BusFactorScore) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "%s\n", score.DomainName)
	fmt.Fprintf(w, "  Bus factor:  %d (", score.BusFactor)
	riskColor(score.RiskLevel).Fprint(w, score.RiskLevel)
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  Coverage:    %.0f%%\n", score.Coverage*100)
	fmt.Fprintf(w, "  Redundancy:  %.2f\n", score.Redundancy)
	fmt.Fprintf(w, "  %s\n", score.VulnerabilityAssessment)

	if len(score.KeyExperts) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Key experts")
		for _, ke := range score.KeyExperts {
			name := ke.Name
			if name == "" {
				name = ke.PersonID.String()
			}
			fmt.Fprintf(w, "  %-24s score %.1f  share %.0f%%\n", name, ke.ExpertiseScore, ke.DependencyStrength*100)
		}
	}
}

func joinStrings(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

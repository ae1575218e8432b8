package game

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/tahcohcat/gofigure-interrogation/internal/nlp"
)

//go:embed scenarios/*.json
var builtin embed.FS

const defaultScenarioFile = "scenarios/silent_estate.json"

type Solution struct {
	Killer string `json:"killer"`
	Motive string `json:"motive"`
	Weapon string `json:"weapon,omitempty"`
}

type Meta struct {
	Title     string   `json:"title"`
	IntroText string   `json:"intro_text"`
	Solution  Solution `json:"solution"`
}

type Outcomes struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Timeout string `json:"timeout"`
}

// Scenario loaded from JSON
type Scenario struct {
	Meta     Meta       `json:"meta"`
	Outcomes Outcomes   `json:"outcomes"`
	Suspects []*Suspect `json:"suspects"`
}

// minFuzzySimilarity keeps misspellings like "veronika" while rejecting
// words that merely share a letter pair with a name.
const minFuzzySimilarity = 0.5

var timelineKey = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// LoadScenario loads a scenario from a JSON file
func LoadScenario(filename string) (*Scenario, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file %s: %w", filename, err)
	}
	defer file.Close()

	return ParseScenario(file)
}

// ParseScenario decodes a scenario and normalizes its suspects.
func ParseScenario(r io.Reader) (*Scenario, error) {
	var scenario Scenario
	if err := json.NewDecoder(r).Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario JSON: %w", err)
	}

	kept := scenario.Suspects[:0]
	for _, s := range scenario.Suspects {
		if s == nil {
			continue
		}
		s.normalize()
		s.Reset(MaxWillingness)
		kept = append(kept, s)
	}
	scenario.Suspects = kept

	return &scenario, nil
}

// DefaultScenario returns a fresh copy of the built-in case.
func DefaultScenario() (*Scenario, error) {
	f, err := builtin.Open(defaultScenarioFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in scenario: %w", err)
	}
	defer f.Close()

	return ParseScenario(f)
}

// Save writes the scenario as indented JSON.
func (sc *Scenario) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}

// ResetSuspects sets every suspect's willingness to start and clears memory.
func (sc *Scenario) ResetSuspects(start int) {
	for _, s := range sc.Suspects {
		s.Reset(start)
	}
}

// Validate lists structural problems. They are reported, not enforced.
func (sc *Scenario) Validate() []string {
	var problems []string

	if strings.TrimSpace(sc.Meta.Title) == "" {
		problems = append(problems, "meta.title is empty")
	}
	if strings.TrimSpace(sc.Meta.Solution.Killer) == "" {
		problems = append(problems, "meta.solution.killer is empty")
	}
	if len(sc.Suspects) != 3 {
		problems = append(problems, fmt.Sprintf("expected 3 suspects, found %d", len(sc.Suspects)))
	}

	guilty := 0
	killerIsGuilty := false
	seen := map[string]bool{}
	for i, s := range sc.Suspects {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("suspect #%d", i+1)
			problems = append(problems, fmt.Sprintf("%s has no name", label))
		}
		if s.ID == "" {
			problems = append(problems, fmt.Sprintf("%s has no id", label))
		} else if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate suspect id %q", s.ID))
		}
		seen[s.ID] = true

		if len(s.KnowledgeSentences) == 0 {
			problems = append(problems, fmt.Sprintf("%s has no knowledge sentences", label))
		}
		for hour := range s.Timeline {
			if !timelineKey.MatchString(hour) {
				problems = append(problems, fmt.Sprintf("%s has malformed timeline key %q", label, hour))
			}
		}

		if s.IsGuilty {
			guilty++
			if sc.Meta.Solution.Killer != "" && namesMatch(s.Name, sc.Meta.Solution.Killer) {
				killerIsGuilty = true
			}
		}
	}

	if guilty != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly one guilty suspect, found %d", guilty))
	}
	if guilty > 0 && sc.Meta.Solution.Killer != "" && !killerIsGuilty {
		problems = append(problems, fmt.Sprintf("solution killer %q is not a guilty suspect", sc.Meta.Solution.Killer))
	}

	return problems
}

// SuspectByID returns nil when no suspect has the id.
func (sc *Scenario) SuspectByID(id string) *Suspect {
	for _, s := range sc.Suspects {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindSuspect resolves a player-typed name: id, then a substring of exactly
// one name, then distinctive name words matched exactly or by the closest
// fuzzy match. A query naming several suspects resolves to nobody.
func (sc *Scenario) FindSuspect(query string) *Suspect {
	query = nlp.Fold(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	if s := sc.SuspectByID(query); s != nil {
		return s
	}

	var found []*Suspect
	for _, s := range sc.Suspects {
		if strings.Contains(nlp.Fold(s.Name), query) {
			found = append(found, s)
		}
	}
	if len(found) == 1 {
		return found[0]
	}

	owners := sc.distinctiveParts()
	var words []string
	for _, tok := range nlp.Tokenize(query) {
		if len(tok) >= 3 && !nlp.IsStopword(tok) {
			words = append(words, tok)
		}
	}

	parts := make([]string, 0, len(owners))
	for part := range owners {
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil
	}
	cm := closestmatch.New(parts, []int{2})

	var named []string
	for _, word := range words {
		if _, ok := owners[word]; ok {
			named = append(named, word)
			continue
		}
		if n := cm.Closest(word); n != "" && bigramSimilarity(word, n) >= minFuzzySimilarity {
			named = append(named, n)
		}
	}
	return soleOwner(named, owners)
}

// IsKiller reports whether the guess names the killer. The suspect the guess
// resolved to is returned as well, if any.
func (sc *Scenario) IsKiller(guess string) (*Suspect, bool) {
	accused := sc.FindSuspect(guess)
	if accused == nil {
		return nil, false
	}
	return accused, accused.IsGuilty || namesMatch(accused.Name, sc.Meta.Solution.Killer)
}

// distinctiveParts maps each name word to its suspect. Words shared by
// several names ("the") and stop words identify nobody and are left out.
func (sc *Scenario) distinctiveParts() map[string]*Suspect {
	owners := map[string]*Suspect{}
	shared := map[string]bool{}
	for _, s := range sc.Suspects {
		for _, part := range nlp.Tokenize(s.Name) {
			if nlp.IsStopword(part) || shared[part] {
				continue
			}
			if prev, ok := owners[part]; ok && prev != s {
				delete(owners, part)
				shared[part] = true
				continue
			}
			owners[part] = s
		}
	}
	return owners
}

// soleOwner returns the suspect owning the words, or nil when the words
// belong to nobody or to more than one suspect.
func soleOwner(words []string, owners map[string]*Suspect) *Suspect {
	var found *Suspect
	for _, w := range words {
		s, ok := owners[w]
		if !ok {
			continue
		}
		if found != nil && found != s {
			return nil
		}
		found = s
	}
	return found
}

// bigramSimilarity is the Dice coefficient over letter pairs.
func bigramSimilarity(a, b string) float64 {
	pairs := func(s string) map[string]int {
		r := []rune(s)
		m := map[string]int{}
		for i := 0; i+1 < len(r); i++ {
			m[string(r[i:i+2])]++
		}
		return m
	}

	pa, pb := pairs(a), pairs(b)
	total, shared := 0, 0
	for _, n := range pa {
		total += n
	}
	for k, n := range pb {
		total += n
		shared += min(n, pa[k])
	}
	if total == 0 {
		return 0
	}
	return 2 * float64(shared) / float64(total)
}

func namesMatch(a, b string) bool {
	a = nlp.Fold(strings.TrimSpace(a))
	b = nlp.Fold(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

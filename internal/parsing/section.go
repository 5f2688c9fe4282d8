package parsing

const (
	// maxHeadingRunes is the exclusive upper bound on heading length
	maxHeadingRunes = 40
	// minProseRunes is the exclusive lower bound for a line to open an implicit summary
	minProseRunes = 100
)

// Section identifies which accumulator owns the lines being read.
type Section int

const (
	SectionNone Section = iota
	SectionExperience
	SectionEducation
	SectionSkills
	SectionSummary
)

func (s Section) String() string {
	switch s {
	case SectionExperience:
		return "experience"
	case SectionEducation:
		return "education"
	case SectionSkills:
		return "skills"
	case SectionSummary:
		return "summary"
	default:
		return "none"
	}
}

// Signal is what the classifier recognised in a line.
type Signal int

const (
	// SignalBody is an ordinary content line
	SignalBody Signal = iota
	// SignalProse is a long line that is not a heading
	SignalProse
	// SignalHeading is a short line matching a section vocabulary
	SignalHeading
)

// Observation is the classifier's verdict on one line.
type Observation struct {
	Signal  Signal
	Heading Section // Set only for SignalHeading
}

// Step is the outcome of feeding one observation to the section state machine.
// Route is the accumulator that receives the line; SectionNone drops it.
type Step struct {
	Next  Section
	Route Section
}

// target names where a rule sends the state or the line
type target int

const (
	toNone target = iota
	toCurrent
	toHeading
	toSummary
)

type rule struct {
	next  target
	route target
}

// idleRules apply before any section has been entered.
var idleRules = map[Signal]rule{
	SignalHeading: {next: toHeading, route: toNone},
	SignalProse:   {next: toSummary, route: toSummary},
	SignalBody:    {next: toNone, route: toNone},
}

// activeRules apply once a section is current.
var activeRules = map[Signal]rule{
	SignalHeading: {next: toHeading, route: toNone},
	SignalProse:   {next: toCurrent, route: toCurrent},
	SignalBody:    {next: toCurrent, route: toCurrent},
}

// Transition is the section state machine: given the current section and an
// observation, it returns the next section and where the line goes.
func Transition(current Section, obs Observation) Step {
	rules := activeRules
	if current == SectionNone {
		rules = idleRules
	}
	r := rules[obs.Signal]
	return Step{
		Next:  r.next.resolve(current, obs),
		Route: r.route.resolve(current, obs),
	}
}

func (t target) resolve(current Section, obs Observation) Section {
	switch t {
	case toCurrent:
		return current
	case toHeading:
		return obs.Heading
	case toSummary:
		return SectionSummary
	default:
		return SectionNone
	}
}

// Classifier recognises section headings and long prose lines.
type Classifier struct {
	headings []headingPattern
}

// Observe classifies a single normalized line.
func (c *Classifier) Observe(line string) Observation {
	n := runeLen(line)
	if n < maxHeadingRunes {
		for _, h := range c.headings {
			if h.re.MatchString(line) {
				return Observation{Signal: SignalHeading, Heading: h.section}
			}
		}
	}
	if n > minProseRunes {
		return Observation{Signal: SignalProse}
	}
	return Observation{Signal: SignalBody}
}

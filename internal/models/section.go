package models

// Section identifies one of the four scored MCAT sections.
type Section string

const (
	SectionChemPhys   Section = "chemPhys"
	SectionCARS       Section = "cars"
	SectionBioBiochem Section = "bioBiochem"
	SectionPsychSoc   Section = "psychSoc"
)

// Sections lists the sections in their canonical order. Every calculator iterates in this order.
var Sections = []Section{SectionChemPhys, SectionCARS, SectionBioBiochem, SectionPsychSoc}

var sectionLabels = map[Section]string{
	SectionChemPhys:   "Chem/Phys",
	SectionCARS:       "CARS",
	SectionBioBiochem: "Bio/Biochem",
	SectionPsychSoc:   "Psych/Soc",
}

// Label returns the display name of the section.
func (s Section) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	_, ok := sectionLabels[s]
	return ok
}

// Category identifies an extracurricular activity category.
type Category string

const (
	CategoryClinical   Category = "clinical"
	CategoryResearch   Category = "research"
	CategoryLeadership Category = "leadership"
	CategoryCommunity  Category = "community"
)

// Categories lists the extracurricular categories in display order.
var Categories = []Category{CategoryClinical, CategoryResearch, CategoryLeadership, CategoryCommunity}

var categoryLabels = map[Category]string{
	CategoryClinical:   "Clinical",
	CategoryResearch:   "Research",
	CategoryLeadership: "Leadership",
	CategoryCommunity:  "Community",
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Practice platforms offered when logging a session.
const (
	PlatformAAMC      = "AAMC"
	PlatformUWorld    = "UWorld"
	PlatformKaplan    = "Kaplan"
	PlatformPrinceton = "Princeton Review"
	PlatformOther     = "Other"
)

// Platforms lists the known practice platforms in display order.
var Platforms = []string{PlatformAAMC, PlatformUWorld, PlatformKaplan, PlatformPrinceton, PlatformOther}

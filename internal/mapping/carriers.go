package mapping

import (
	"strings"
	"unicode"
)

// CarrierMapping ties one carrier row on the carrier-selection pages to its
// checkbox and its non-resident-states text field. The table mirrors the
// row order of the printed form: featured Medicare Advantage carriers first,
// then the alphabetical long tail. Compiled once, never mutated.
type CarrierMapping struct {
	Name         string
	Checkbox     string
	NonResStates string
}

// Carriers is the static carrier table. Checkbox/non-resident field names
// follow the template's fill_<n> numbering, two slots per row.
var Carriers = []CarrierMapping{
	{"Aetna", "fill_1", "fill_2"},
	{"Aetna Medicare Advantage", "fill_3", "fill_4"},
	{"Humana", "fill_5", "fill_6"},
	{"Wellcare", "fill_7", "fill_8"},
	{"Cigna", "fill_9", "fill_10"},
	{"Cigna Supplemental Benefits", "fill_11", "fill_12"},
	{"UnitedHealthcare", "fill_13", "fill_14"},
	{"Anthem", "fill_15", "fill_16"},
	{"Devoted Health", "fill_17", "fill_18"},
	{"Clover Health", "fill_19", "fill_20"},
	{"Alignment Health Plan", "fill_21", "fill_22"},
	{"Molina Healthcare", "fill_23", "fill_24"},
	{"Oscar Health", "fill_25", "fill_26"},
	{"Ambetter", "fill_27", "fill_28"},
	{"Bright Health", "fill_29", "fill_30"},
	{"Zing Health", "fill_31", "fill_32"},
	{"Lasso Healthcare", "fill_33", "fill_34"},
	{"Amerigroup", "fill_35", "fill_36"},
	{"Allwell", "fill_37", "fill_38"},
	{"Freedom Health", "fill_39", "fill_40"},
	{"Optimum Healthcare", "fill_41", "fill_42"},
	{"Simply Healthcare", "fill_43", "fill_44"},
	{"CarePlus Health Plans", "fill_45", "fill_46"},
	{"Viva Health", "fill_47", "fill_48"},
	{"Kaiser Permanente", "fill_49", "fill_50"},
	{"SCAN Health Plan", "fill_51", "fill_52"},
	{"Blue Cross Blue Shield", "fill_53", "fill_54"},
	{"Highmark", "fill_55", "fill_56"},
	{"Regence", "fill_57", "fill_58"},
	{"Premera Blue Cross", "fill_59", "fill_60"},
	{"Florida Blue", "fill_61", "fill_62"},
	{"Capital Blue Cross", "fill_63", "fill_64"},
	{"Geisinger Health Plan", "fill_65", "fill_66"},
	{"UPMC Health Plan", "fill_67", "fill_68"},
	{"Priority Health", "fill_69", "fill_70"},
	{"Health Alliance Plan", "fill_71", "fill_72"},
	{"Medical Mutual", "fill_73", "fill_74"},
	{"CareSource", "fill_75", "fill_76"},
	{"Security Health Plan", "fill_77", "fill_78"},
	{"Quartz", "fill_79", "fill_80"},
	{"Dean Health Plan", "fill_81", "fill_82"},
	{"HealthPartners", "fill_83", "fill_84"},
	{"Medica", "fill_85", "fill_86"},
	{"Ucare", "fill_87", "fill_88"},
	{"Sanford Health Plan", "fill_89", "fill_90"},
	{"Avera Health Plans", "fill_91", "fill_92"},
	{"Presbyterian Health Plan", "fill_93", "fill_94"},
	{"Baylor Scott and White", "fill_95", "fill_96"},
	{"Superior HealthPlan", "fill_97", "fill_98"},
	{"Community Health Choice", "fill_99", "fill_100"},
	{"Memorial Hermann", "fill_101", "fill_102"},
	{"Scott and White Health Plan", "fill_103", "fill_104"},
	{"Mutual of Omaha", "fill_105", "fill_106"},
	{"Aflac", "fill_107", "fill_108"},
	{"AIG", "fill_109", "fill_110"},
	{"Allianz", "fill_111", "fill_112"},
	{"Allstate Benefits", "fill_113", "fill_114"},
	{"American Amicable", "fill_115", "fill_116"},
	{"American Equity", "fill_117", "fill_118"},
	{"American General", "fill_119", "fill_120"},
	{"Americo", "fill_121", "fill_122"},
	{"Ameritas", "fill_123", "fill_124"},
	{"Athene", "fill_125", "fill_126"},
	{"Banner Life", "fill_127", "fill_128"},
	{"Brighthouse Financial", "fill_129", "fill_130"},
	{"Columbian Financial Group", "fill_131", "fill_132"},
	{"EquiTrust", "fill_133", "fill_134"},
	{"Fidelity and Guaranty", "fill_135", "fill_136"},
	{"Foresters Financial", "fill_137", "fill_138"},
	{"Gerber Life", "fill_139", "fill_140"},
	{"Global Atlantic", "fill_141", "fill_142"},
	{"Great Western", "fill_143", "fill_144"},
	{"Guarantee Trust Life", "fill_145", "fill_146"},
	{"John Hancock", "fill_147", "fill_148"},
	{"KSKJ Life", "fill_149", "fill_150"},
	{"Lincoln Financial", "fill_151", "fill_152"},
	{"Lumico", "fill_153", "fill_154"},
	{"Manhattan Life", "fill_155", "fill_156"},
	{"MassMutual", "fill_157", "fill_158"},
	{"Medico", "fill_159", "fill_160"},
	{"Nassau", "fill_161", "fill_162"},
	{"National Life Group", "fill_163", "fill_164"},
	{"Nationwide", "fill_165", "fill_166"},
	{"North American", "fill_167", "fill_168"},
	{"Pacific Life", "fill_169", "fill_170"},
	{"Protective Life", "fill_171", "fill_172"},
	{"Prudential", "fill_173", "fill_174"},
	{"Royal Neighbors", "fill_175", "fill_176"},
	{"SBLI", "fill_177", "fill_178"},
	{"Securian Financial", "fill_179", "fill_180"},
	{"Transamerica", "fill_181", "fill_182"},
	{"United of Omaha", "fill_183", "fill_184"},
	{"Washington National", "fill_185", "fill_186"},
}

// minPrefixLen guards the final first-word-prefix fallback against short,
// generic inputs matching unrelated rows.
const minPrefixLen = 4

var insignificantWords = map[string]bool{
	"the": true,
	"of":  true,
	"and": true,
	"a":   true,
}

// normalizeCarrier lowercases and strips every non-alphanumeric rune.
func normalizeCarrier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// firstSignificantWord returns the first lowercased word of name that is
// not a filler word, or "" when there is none.
func firstSignificantWord(name string) string {
	for _, w := range strings.Fields(strings.ToLower(name)) {
		w = normalizeCarrier(w)
		if w == "" || insignificantWords[w] {
			continue
		}
		return w
	}
	return ""
}

// MatchCarrier resolves a free-text carrier name against the static table.
// The cascade runs normalized exact match, substring containment in either
// direction, first-significant-word equality, then first-word prefix.
// First match wins; ok is false when nothing matched.
func MatchCarrier(name string) (CarrierMapping, bool) {
	norm := normalizeCarrier(name)
	if norm == "" {
		return CarrierMapping{}, false
	}

	for _, c := range Carriers {
		if normalizeCarrier(c.Name) == norm {
			return c, true
		}
	}

	for _, c := range Carriers {
		cn := normalizeCarrier(c.Name)
		if strings.Contains(norm, cn) || strings.Contains(cn, norm) {
			return c, true
		}
	}

	word := firstSignificantWord(name)
	if word == "" {
		return CarrierMapping{}, false
	}
	for _, c := range Carriers {
		if firstSignificantWord(c.Name) == word {
			return c, true
		}
	}

	if len(word) >= minPrefixLen {
		for _, c := range Carriers {
			if strings.HasPrefix(firstSignificantWord(c.Name), word) {
				return c, true
			}
		}
	}

	return CarrierMapping{}, false
}

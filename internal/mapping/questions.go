package mapping

import "regexp"

// QuestionMapping ties one legal-history question id to its radio group on
// the template and the group's Yes/No export values. Compiled once, never
// mutated.
type QuestionMapping struct {
	ID        string
	GroupName string
	YesOption string
	NoOption  string
}

// Questions is the static legal-history table, in form order. Lettered ids
// are sub-questions of their numeric parent. Most groups follow the
// Q<id>/Q<id>_Yes/Q<id>_No convention of the current template revision;
// the trailing entries keep the legacy names of the untouched last page.
var Questions = []QuestionMapping{
	{"1", "Q1", "Q1_Yes", "Q1_No"},
	{"1a", "Q1a", "Q1a_Yes", "Q1a_No"},
	{"1b", "Q1b", "Q1b_Yes", "Q1b_No"},
	{"1c", "Q1c", "Q1c_Yes", "Q1c_No"},
	{"1d", "Q1d", "Q1d_Yes", "Q1d_No"},
	{"1e", "Q1e", "Q1e_Yes", "Q1e_No"},
	{"1f", "Q1f", "Q1f_Yes", "Q1f_No"},
	{"2", "Q2", "Q2_Yes", "Q2_No"},
	{"2a", "Q2a", "Q2a_Yes", "Q2a_No"},
	{"2b", "Q2b", "Q2b_Yes", "Q2b_No"},
	{"2c", "Q2c", "Q2c_Yes", "Q2c_No"},
	{"2d", "Q2d", "Q2d_Yes", "Q2d_No"},
	{"3", "Q3", "Q3_Yes", "Q3_No"},
	{"3a", "Q3a", "Q3a_Yes", "Q3a_No"},
	{"3b", "Q3b", "Q3b_Yes", "Q3b_No"},
	{"3c", "Q3c", "Q3c_Yes", "Q3c_No"},
	{"4", "Q4", "Q4_Yes", "Q4_No"},
	{"4a", "Q4a", "Q4a_Yes", "Q4a_No"},
	{"4b", "Q4b", "Q4b_Yes", "Q4b_No"},
	{"5", "Q5", "Q5_Yes", "Q5_No"},
	{"5a", "Q5a", "Q5a_Yes", "Q5a_No"},
	{"5b", "Q5b", "Q5b_Yes", "Q5b_No"},
	{"5c", "Q5c", "Q5c_Yes", "Q5c_No"},
	{"5d", "Q5d", "Q5d_Yes", "Q5d_No"},
	{"5e", "Q5e", "Q5e_Yes", "Q5e_No"},
	{"5f", "Q5f", "Q5f_Yes", "Q5f_No"},
	{"6", "Q6", "Q6_Yes", "Q6_No"},
	{"6a", "Q6a", "Q6a_Yes", "Q6a_No"},
	{"7", "Q7", "Q7_Yes", "Q7_No"},
	{"7a", "Q7a", "Q7a_Yes", "Q7a_No"},
	{"7b", "Q7b", "Q7b_Yes", "Q7b_No"},
	{"8", "Q8", "Q8_Yes", "Q8_No"},
	{"9", "Q9", "Q9_Yes", "Q9_No"},
	{"9a", "Q9a", "Q9a_Yes", "Q9a_No"},
	{"10", "Q10", "Q10_Yes", "Q10_No"},
	{"10a", "Q10a", "Q10a_Yes", "Q10a_No"},
	{"10b", "Q10b", "Q10b_Yes", "Q10b_No"},
	{"10c", "Q10c", "Q10c_Yes", "Q10c_No"},
	{"11", "Q11", "Q11_Yes", "Q11_No"},
	{"12", "Q12", "Q12_Yes", "Q12_No"},
	{"13", "Q13", "Q13_Yes", "Q13_No"},
	{"14", "Q14", "Q14_Yes", "Q14_No"},
	{"14a", "Q14a", "Q14a_Yes", "Q14a_No"},
	{"15", "Q15", "Q15_Yes", "Q15_No"},
	{"16", "Q16", "Q16_Yes", "Q16_No"},
	{"17", "Q17", "Q17_Yes", "Q17_No"},
	{"18", "Group18", "Choice18Yes", "Choice18No"},
	{"18a", "Group18a", "Choice18aYes", "Choice18aNo"},
	{"19", "Group19", "Choice19Yes", "Choice19No"},
	{"20", "Group20", "Choice20Yes", "Choice20No"},
}

var subQuestionRe = regexp.MustCompile(`^(\d+)[a-z]$`)

// ParentQuestionID returns the numeric parent of a lettered sub-question id
// ("5a" -> "5"). ok is false for ids that are not sub-questions.
func ParentQuestionID(id string) (string, bool) {
	m := subQuestionRe.FindStringSubmatch(id)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EffectiveAnswer resolves the answer the form should show for one question.
// A parent answered "No" forces every lettered child to "No" regardless of
// the child's own stored answer, mirroring the paper form's skip
// instruction. nil means unanswered; the caller skips the field entirely.
func EffectiveAnswer(id string, answers map[string]*bool) *bool {
	if parent, ok := ParentQuestionID(id); ok {
		if pa, found := answers[parent]; found && pa != nil && !*pa {
			no := false
			return &no
		}
	}
	return answers[id]
}

package seat

import "fmt"

// Grade は座席等級を表す
type Grade string

const (
	GradeVIP      Grade = "VIP"
	GradeR        Grade = "R"
	GradeS        Grade = "S"
	GradeA        Grade = "A"
	GradeStanding Grade = "STANDING"
)

// ParseGrade は文字列から座席等級へ変換する
func ParseGrade(s string) (Grade, error) {
	switch Grade(s) {
	case GradeVIP, GradeR, GradeS, GradeA, GradeStanding:
		return Grade(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGrade, s)
}

// Label は利用者向けの等級表示名を返す
func (g Grade) Label() string {
	switch g {
	case GradeVIP:
		return "VIP석"
	case GradeR:
		return "R석"
	case GradeS:
		return "S석"
	case GradeA:
		return "A석"
	case GradeStanding:
		return "스탠딩석"
	}
	return string(g)
}

// Valid は既知の等級かどうかを返す
func (g Grade) Valid() bool {
	_, err := ParseGrade(string(g))
	return err == nil
}

package room

type Type string

const (
	TypeStandard     Type = "STANDARD"
	TypeDeluxe       Type = "DELUXE"
	TypeSuite        Type = "SUITE"
	TypePresidential Type = "PRESIDENTIAL"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeSuite, TypePresidential:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidRoomType
	}
	return t, nil
}

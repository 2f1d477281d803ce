package errors

import "fmt"

// Messages shared by pre-write checks and storage constraint translation.
const (
	MsgSeatOccupied    = "Seat already occupied."
	MsgPersonSeated    = "Person already seated in this lineup."
	MsgAlreadyMember   = "This person is already a member of the specified team."
	MsgLineupExists    = "A lineup already exists for this training."
	MsgTeamNameTaken   = "team with this name already exists."
	MsgLocationInUse   = "Cannot delete this location because trainings still reference it."
	MsgDuplicateRecord = "A record with these values already exists."
)

// Field-level messages.
const (
	MsgRequired          = "This field is required."
	MsgBlank             = "This field may not be blank."
	MsgNull              = "This field may not be null."
	MsgInvalid           = "Invalid value."
	MsgInvalidUUID       = "Must be a valid UUID."
	MsgLocationWrongTeam = "Location must belong to the same team."
	MsgLocationTeamInUse = "Location is used by trainings of its current team and cannot move to another team."
	MsgTrainingFixed     = "The training of an existing lineup cannot be changed."
	MsgSeatsSameLineup   = "Seats must belong to the same lineup."
	MsgSeatsDistinct     = "Cannot swap a seat with itself."
)

func MsgDoesNotExist(pk interface{}) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", pk)
}

func MsgInvalidChoice(v interface{}) string {
	return fmt.Sprintf("\"%v\" is not a valid choice.", v)
}

func MsgMinValue(n interface{}) string {
	return fmt.Sprintf("Ensure this value is greater than or equal to %v.", n)
}

func MsgMaxValue(n interface{}) string {
	return fmt.Sprintf("Ensure this value is less than or equal to %v.", n)
}

func MsgMaxLength(n interface{}) string {
	return fmt.Sprintf("Ensure this field has no more than %v characters.", n)
}

// MsgLineupIncomplete rejects publishing a lineup with empty seats.
func MsgLineupIncomplete(missing int) string {
	return fmt.Sprintf("Cannot publish: %d seat(s) are missing or empty.", missing)
}

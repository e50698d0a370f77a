package landing

type feature struct {
	title string
	text  string
}

var features = []feature{
	{"Find opportunities", "Browse causes that need your skills, close to home or remote."},
	{"Match by skill", "Tell us what you are good at and we connect you with NGOs that need it."},
	{"Grow your impact", "NGOs reach motivated volunteers without the paperwork."},
}

package release

type Config struct {
	// CommitMessage is a template with {{version}}, {{release}}, {{due}},
	// {{eol}} and {{key}} placeholders.
	CommitMessage string
}

const DefaultCommitMessage = "[release-manager] {{version}}: release {{release}}, due {{due}}, eol {{eol}}"

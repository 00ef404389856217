package approvals

import "github.com/ylck/marge-bot/internal/host"

// ThumbsUp is the award emoji that counts as an approval vote.
const ThumbsUp = "thumbsup"

// Tally counts qualifying approval votes. A reaction qualifies iff it is a
// thumbs-up from a user in the eligible owner set. The full reaction
// records are returned so callers can recover user ids and usernames.
//
// Votes are counted per reaction, not per distinct user: the host allows
// at most one award per emoji per user, which makes the two equivalent.
func Tally(reactions []host.Reaction, owners map[string]struct{}) (approvalsLeft int, upvotes []host.Reaction) {
	for _, r := range reactions {
		if r.Name != ThumbsUp {
			continue
		}
		if _, ok := owners[r.User.Username]; !ok {
			continue
		}
		upvotes = append(upvotes, r)
	}

	approvalsLeft = len(owners) - len(upvotes)
	if approvalsLeft < 0 {
		approvalsLeft = 0
	}
	return approvalsLeft, upvotes
}

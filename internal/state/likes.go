package state

// GuestUser is the user-id sentinel for liked-id sets while signed out.
// Embedding the user id in the key keeps one account's likes from leaking
// into another after switching accounts on the same machine.
const GuestUser = "guest"

func likeKey(resource, userID string) string {
	if userID == "" {
		userID = GuestUser
	}
	return resource + ":" + userID
}

// LikedIDs returns the set of ids the user has liked for a resource type
// (e.g. "reviews"). Never nil.
func (s *Store) LikedIDs(resource, userID string) map[string]bool {
	var ids []string
	s.get(bucketLikes, likeKey(resource, userID), &ids)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// SetLiked adds or removes one id from the user's liked set.
func (s *Store) SetLiked(resource, userID, id string, liked bool) {
	if id == "" {
		return
	}
	set := s.LikedIDs(resource, userID)
	if liked {
		set[id] = true
	} else {
		delete(set, id)
	}
	ids := make([]string, 0, len(set))
	for v := range set {
		ids = append(ids, v)
	}
	s.put(bucketLikes, likeKey(resource, userID), ids)
}

// IsLiked reports whether the user has liked the id.
func (s *Store) IsLiked(resource, userID, id string) bool {
	return s.LikedIDs(resource, userID)[id]
}

// ClearUser removes every liked set belonging to a user. Used on sign-out of
// that account.
func (s *Store) ClearUser(userID string) {
	if userID == "" {
		return
	}
	// Keys are {resource}:{userID}; resources are a small fixed set.
	for _, resource := range []string{"reviews", "novels", "comments"} {
		s.deletePrefix(bucketLikes, resource+":"+userID)
	}
}

package models

// Validate checks that the post meets all storage requirements: required
// fields present and, when a date is set, a valid calendar date.
func (p *Post) Validate() error {
	if missing := missingFromStruct(p); len(missing) > 0 {
		return MissingFields(missing...)
	}
	if p.Date != "" && !IsValidDate(p.Date) {
		return NewValidationError("Invalid date format. Use YYYY-MM-DD", "date")
	}
	return nil
}

// MaxID returns the highest post id in the collection, or 0 when empty.
func MaxID(posts []Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

// NextCommentID advances the post's comment sequence and returns the new id.
// Collections written before the sequence field existed are healed by
// starting from the highest id currently in the list, so ids never collide
// with or resurrect an earlier comment.
func (p *Post) NextCommentID() int {
	seq := p.CommentSeq
	for _, c := range p.Comments {
		if c.ID > seq {
			seq = c.ID
		}
	}
	p.CommentSeq = seq + 1
	return p.CommentSeq
}

// AddComment appends a comment to the post.
func (p *Post) AddComment(comment Comment) {
	p.Comments = append(p.Comments, comment)
}

// RemoveComment removes the comment with the given id, reporting whether it
// was present.
func (p *Post) RemoveComment(commentID int) bool {
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, if present.
func (p *Post) FindComment(commentID int) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return Comment{}, false
}

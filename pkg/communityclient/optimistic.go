package communityclient

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// State is the phase of an optimistic interaction.
type State int

const (
	Idle State = iota
	Pending
	Reconciled
	Reverted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Reconciled:
		return "reconciled"
	case Reverted:
		return "reverted"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Notify surfaces a transient failure message to the user.
type Notify func(err error)

// Liker is the part of Client a LikeToggle needs.
type Liker interface {
	ToggleLike(ctx context.Context, postID string) (LikeState, error)
}

// LikeSnapshot is what a like button renders.
type LikeSnapshot struct {
	Liked bool
	Count int
	State State
}

// LikeToggle keeps the like button of one post. Server calls are serialized;
// the display follows the latest server answer once nothing is in flight.
type LikeToggle struct {
	api    Liker
	postID string
	notify Notify

	calls chan struct{} // one slot, held for the duration of one server call

	mu        sync.Mutex
	shown     LikeState
	confirmed LikeState
	inFlight  int
	state     State
}

func NewLikeToggle(api Liker, postID string, initial LikeState, notify Notify) *LikeToggle {
	return &LikeToggle{
		api:       api,
		postID:    postID,
		notify:    notify,
		calls:     make(chan struct{}, 1),
		shown:     initial,
		confirmed: initial,
	}
}

func (t *LikeToggle) Snapshot() LikeSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return LikeSnapshot{Liked: t.shown.Liked, Count: t.shown.Count, State: t.state}
}

// Toggle flips the displayed state at once, then asks the server. On failure the
// display falls back to the last server-confirmed state and notify is called.
// A toggle still queued behind another call when ctx ends is abandoned without
// reaching the server and without notify.
func (t *LikeToggle) Toggle(ctx context.Context) error {
	t.mu.Lock()
	t.shown.Liked = !t.shown.Liked
	if t.shown.Liked {
		t.shown.Count++
	} else if t.shown.Count > 0 {
		t.shown.Count--
	}
	t.inFlight++
	t.state = Pending
	t.mu.Unlock()

	var (
		result    LikeState
		err       error
		abandoned bool
	)
	select {
	case t.calls <- struct{}{}:
		result, err = t.api.ToggleLike(ctx, t.postID)
		<-t.calls
	case <-ctx.Done():
		err, abandoned = ctx.Err(), true
	}

	t.mu.Lock()
	t.inFlight--
	if err != nil {
		t.shown = t.confirmed
		if t.inFlight == 0 {
			t.state = Reverted
		}
	} else {
		t.confirmed = result
		if t.inFlight == 0 {
			t.shown = result
			t.state = Reconciled
		}
	}
	t.mu.Unlock()

	if err != nil && !abandoned && t.notify != nil {
		t.notify(err)
	}
	return err
}

// Commenter is the part of Client a CommentThread needs.
type Commenter interface {
	CreateComment(ctx context.Context, postID string, in CommentInput) (*Comment, error)
}

// ThreadComment is a comment as displayed, possibly not yet stored.
type ThreadComment struct {
	Comment
	State State
}

// CommentThread shows a post's comments with optimistic appends.
type CommentThread struct {
	api    Commenter
	postID string
	notify Notify

	mu       sync.Mutex
	comments []ThreadComment
	seq      int
}

func NewCommentThread(api Commenter, postID string, existing []Comment, notify Notify) *CommentThread {
	t := &CommentThread{api: api, postID: postID, notify: notify}
	for _, c := range existing {
		t.comments = append(t.comments, ThreadComment{Comment: c, State: Reconciled})
	}
	return t
}

// Comments returns a copy of the displayed thread.
func (t *CommentThread) Comments() []ThreadComment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ThreadComment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Submit shows the comment under a temporary id, then replaces it with the stored
// comment or removes it when the server rejects it.
func (t *CommentThread) Submit(ctx context.Context, in CommentInput) (*Comment, error) {
	t.mu.Lock()
	t.seq++
	tempID := "pending-" + strconv.Itoa(t.seq)
	t.comments = append(t.comments, ThreadComment{
		Comment: Comment{ID: tempID, PostID: t.postID, ParentID: in.ParentID, Content: strings.TrimSpace(in.Content)},
		State:   Pending,
	})
	t.mu.Unlock()

	stored, err := t.api.CreateComment(ctx, t.postID, in)

	t.mu.Lock()
	for i := range t.comments {
		if t.comments[i].ID != tempID {
			continue
		}
		if err != nil {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
		} else {
			t.comments[i] = ThreadComment{Comment: *stored, State: Reconciled}
		}
		break
	}
	t.mu.Unlock()

	if err != nil {
		if t.notify != nil {
			t.notify(err)
		}
		return nil, err
	}
	return stored, nil
}

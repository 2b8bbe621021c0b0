package game

import (
    "fmt"
)

// AssignRoles deals a shuffled deck of the four roles to the active roster by position.
// Dealing again before a result re-shuffles and drops any pending guess.
func (r *Room) AssignRoles() error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if len(r.players) != MaxPlayers {
        return ErrNeedFourPlayers
    }
    if r.roundComplete {
        return ErrRoundComplete
    }
    deck := make([]Role, len(Roles))
    copy(deck, Roles)
    r.shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
    for i, p := range r.players {
        p.Role = deck[i]
    }
    r.rolesAssigned = true
    r.mantriGuess = ""
    return nil
}

// SubmitGuess records the Mantri's accusation, replacing any earlier one in the same round.
func (r *Room) SubmitGuess(mantriID, guessedID string) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    // roles are cleared on reset, so nobody holds Mantri before a deal
    mantri := r.playerLocked(mantriID)
    if mantri == nil || mantri.Role != RoleMantri {
        return ErrNotMantri
    }
    if r.roundComplete {
        return ErrRoundComplete
    }
    if r.playerLocked(guessedID) == nil {
        return ErrPlayerNotFound
    }
    r.mantriGuess = guessedID
    return nil
}

// ComputeResult scores the pending guess. A correct guess zeroes the Mantri and
// Sipahi; a wrong one hands the Chor their combined 1300. Scores are applied once
// per round; later calls return the recorded result.
func (r *Room) ComputeResult() (Result, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    if r.mantriGuess == "" {
        return Result{}, ErrGuessNotSubmitted
    }
    if r.roundComplete && r.lastResult != nil {
        res := *r.lastResult
        res.Entries = append([]ResultEntry(nil), r.lastResult.Entries...)
        res.Standings = append([]Standing(nil), r.lastResult.Standings...)
        res.Cached = true
        return res, nil
    }

    var chor *Player
    for _, p := range r.players {
        if p.Role == RoleChor {
            chor = p
            break
        }
    }
    if chor == nil {
        return Result{}, fmt.Errorf("room %s: %w", r.ID, ErrNoChor)
    }
    correct := r.mantriGuess == chor.ID

    r.round++
    res := Result{Round: r.round, Correct: correct, Entries: make([]ResultEntry, 0, len(r.players))}
    for _, p := range r.players {
        pts := roundPoints(p.Role, correct)
        p.Points = pts
        r.scores[p.ID] += pts
        res.Entries = append(res.Entries, ResultEntry{PlayerID: p.ID, Name: p.Name, Role: p.Role, Points: pts})
    }
    res.Standings = r.standingsLocked()
    r.roundComplete = true
    stored := res
    stored.Entries = append([]ResultEntry(nil), res.Entries...)
    stored.Standings = append([]Standing(nil), res.Standings...)
    r.lastResult = &stored
    return res, nil
}

func roundPoints(role Role, correct bool) int {
    switch {
    case correct && (role == RoleMantri || role == RoleSipahi):
        return 0
    case !correct && role == RoleChor:
        return RoleMantri.Points() + RoleSipahi.Points()
    default:
        return role.Points()
    }
}

// ResetRound clears roles, round points and the guess. Cumulative scores are kept.
func (r *Room) ResetRound() {
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, p := range r.players {
        p.Role = RoleNone
        p.Points = 0
    }
    r.rolesAssigned = false
    r.mantriGuess = ""
    r.roundComplete = false
    r.lastResult = nil
}

func (r *Room) RoleOf(playerID string) (Role, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    p := r.playerLocked(playerID)
    if p == nil {
        return RoleNone, ErrPlayerNotFound
    }
    return p.Role, nil
}

func (r *Room) RolesAssigned() bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.rolesAssigned
}

func (r *Room) PendingGuess() string {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.mantriGuess
}

func (r *Room) RoundComplete() bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.roundComplete
}

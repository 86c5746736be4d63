package terminal

// PuzzleVisible reports whether boot has finished and the credential puzzle
// is on screen.
func (s *Session) PuzzleVisible() bool {
	return s.power && s.bootPhase == len(BootSequence)
}

// SubmitPassword checks guess against the fixed password. A wrong guess
// counts an attempt and raises the transient error flag; there is no
// lockout.
func (s *Session) SubmitPassword(guess string) (bool, error) {
	if !s.PuzzleVisible() {
		return false, ErrPuzzleNotVisible
	}
	if s.authenticated {
		return false, ErrAlreadyAuthenticated
	}

	if guess == Password {
		s.authenticated = true
		s.errorUntil = s.clock.Now()
		s.logger.Info("terminal unlocked", "session", s.id, "attempts", s.attemptCount)
		return true, nil
	}

	s.attemptCount++
	s.errorUntil = s.clock.Now().Add(s.errorDuration)
	s.logger.Debug("wrong password", "session", s.id, "attempts", s.attemptCount)
	return false, nil
}

// ErrorVisible reports whether the wrong-password flag is still up.
func (s *Session) ErrorVisible() bool {
	return s.clock.Now().Before(s.errorUntil)
}

// HintVisible reports whether enough attempts have failed to show the hint.
func (s *Session) HintVisible() bool {
	return s.attemptCount > 2
}

// OpenTerminal moves an authenticated session to the command prompt and
// greets the user. Calling it again once open does nothing.
func (s *Session) OpenTerminal() error {
	if !s.power || !s.authenticated {
		return ErrNotAuthenticated
	}
	if s.terminalOpen {
		return nil
	}
	s.terminalOpen = true
	s.transcript = append(s.transcript, Line{Role: RoleOutput, Full: WelcomeText, Visible: WelcomeText})
	s.logger.Debug("terminal opened", "session", s.id)
	return nil
}

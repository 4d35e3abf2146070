package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avoronov/secdash/internal/client/api"
	"github.com/avoronov/secdash/internal/client/services"
)

func profileAccount() *fakeAccount {
	return &fakeAccount{
		LoadRet: &services.Identity{Token: "tok-abc", Username: "alice", Email: "alice@example.com"},
	}
}

func startProfile(t *testing.T, events Events) (*Session, *fakeScheduler, *fakeAccount) {
	t.Helper()
	acct := profileAccount()
	s, sched := newTestSession(t, KindProfile, acct, events)
	startSession(t, s, sched)
	require.Equal(t, StepMenu, s.Step())
	return s, sched, acct
}

func TestMenuExitRegardlessOfFormData(t *testing.T) {
	exited := make(chan struct{}, 1)
	s, sched, _ := startProfile(t, Events{OnExit: func() { exited <- struct{}{} }})

	// Accumulate some form data first.
	submitLine(s, sched, "1")
	submitLine(s, sched, "newname")
	require.Equal(t, StepMenu, s.Step())

	submitLine(s, sched, "7")
	require.Equal(t, StepEnded, s.Step())
	select {
	case <-exited:
	default:
		t.Fatal("OnExit should have fired")
	}
}

func TestMenuOutOfRangeChoiceRedisplaysMenu(t *testing.T) {
	s, sched, _ := startProfile(t, Events{})

	submitLine(s, sched, "9")
	require.True(t, hasLine(s, "Invalid option. Please select 1-7."))
	require.Equal(t, StepMenu, s.Step())
	require.True(t, s.Armed())
	require.GreaterOrEqual(t, countLine(s, "Select an option (1-7):"), 2, "menu should be redisplayed")

	submitLine(s, sched, "0")
	require.Equal(t, StepMenu, s.Step())
	submitLine(s, sched, "abc")
	require.Equal(t, StepMenu, s.Step())
}

func TestEditUsernameEmptyKeepsCurrentValue(t *testing.T) {
	s, sched, acct := startProfile(t, Events{})

	submitLine(s, sched, "1")
	require.Equal(t, StepEditUsername, s.Step())

	submitLine(s, sched, "")
	require.Equal(t, StepMenu, s.Step())
	require.True(t, hasLine(s, "Keeping current username."))

	// Saving afterwards reports nothing to save.
	submitLine(s, sched, "4")
	require.True(t, hasLine(s, "No changes to save."))
	require.Equal(t, StepMenu, s.Step())
	require.False(t, acct.called("saveUsername"))
}

func TestEditUsernameValidationError(t *testing.T) {
	s, sched, _ := startProfile(t, Events{})

	submitLine(s, sched, "1")
	submitLine(s, sched, "ab")
	require.True(t, hasLine(s, "Username must be at least 3 characters"))
	require.Equal(t, StepEditUsername, s.Step(), "invalid edit keeps the step")
}

func TestSaveUsernameFlow(t *testing.T) {
	done := make(chan struct{}, 1)
	s, sched, acct := startProfile(t, Events{OnComplete: func() { done <- struct{}{} }})

	submitLine(s, sched, "1")
	submitLine(s, sched, "newname")
	require.True(t, hasLine(s, "Username will be updated to 'newname' on save."))
	require.Equal(t, StepMenu, s.Step())

	submitLine(s, sched, "4")
	require.Equal(t, StepConfirmSave, s.Step())

	submitLine(s, sched, "y")
	require.True(t, acct.called("saveUsername"))
	require.Equal(t, "tok-abc", acct.LastSaveToken)
	require.Equal(t, "newname", acct.LastSaveUsername)
	require.Equal(t, "alice@example.com", acct.LastSaveEmail)
	require.True(t, hasLine(s, "Profile updated successfully."))
	require.Equal(t, StepComplete, s.Step())

	select {
	case <-done:
	default:
		t.Fatal("OnComplete should have fired")
	}
}

func TestSaveDeclinedReturnsToMenu(t *testing.T) {
	s, sched, acct := startProfile(t, Events{})

	submitLine(s, sched, "1")
	submitLine(s, sched, "newname")
	submitLine(s, sched, "4")
	submitLine(s, sched, "n")

	require.True(t, hasLine(s, "Save cancelled."))
	require.Equal(t, StepMenu, s.Step())
	require.False(t, acct.called("saveUsername"))
}

func TestChangePasswordChainRecordsPendingChange(t *testing.T) {
	s, sched, acct := startProfile(t, Events{})

	submitLine(s, sched, "2")
	require.Equal(t, StepCurrentPassword, s.Step())

	submitLine(s, sched, "oldsecret")
	require.Equal(t, StepNewPassword, s.Step())

	submitLine(s, sched, "NewPass1x")
	require.Equal(t, StepConfirmPassword, s.Step())

	submitLine(s, sched, "NewPass1x")
	require.Equal(t, StepMenu, s.Step())
	require.True(t, hasLine(s, "Password change recorded. Select 'Save changes' to apply."))

	submitLine(s, sched, "4")
	submitLine(s, sched, "y")
	require.True(t, acct.called("changePassword"))
	require.Equal(t, "oldsecret", acct.LastCurrentPassword)
	require.Equal(t, "NewPass1x", acct.LastNewPassword)
	require.Equal(t, StepComplete, s.Step())
}

func TestChangePasswordMismatchStaysOnConfirm(t *testing.T) {
	s, sched, _ := startProfile(t, Events{})

	submitLine(s, sched, "2")
	submitLine(s, sched, "oldsecret")
	submitLine(s, sched, "NewPass1x")
	submitLine(s, sched, "Different1")

	require.True(t, hasLine(s, "Passwords do not match"))
	require.Equal(t, StepConfirmPassword, s.Step())
}

func TestChangePasswordEmptyCurrentIsRejected(t *testing.T) {
	s, sched, _ := startProfile(t, Events{})

	submitLine(s, sched, "2")
	submitLine(s, sched, "")
	require.True(t, hasLine(s, "Current password is required"))
	require.Equal(t, StepCurrentPassword, s.Step())
}

func TestChangePasswordEmptyNewCancelsSubFlow(t *testing.T) {
	s, sched, acct := startProfile(t, Events{})

	submitLine(s, sched, "2")
	submitLine(s, sched, "oldsecret")
	submitLine(s, sched, "")

	require.True(t, hasLine(s, "Password change cancelled."))
	require.Equal(t, StepMenu, s.Step())

	submitLine(s, sched, "4")
	require.True(t, hasLine(s, "No changes to save."))
	require.False(t, acct.called("changePassword"))
}

func TestDeleteRequiresExactLiteral(t *testing.T) {
	s, sched, acct := startProfile(t, Events{})

	for _, wrong := range []string{"delete", "Delete", "yes", "", "DELETE!"} {
		submitLine(s, sched, "5")
		require.Equal(t, StepConfirmDelete, s.Step())

		submitLine(s, sched, wrong)
		require.Equal(t, StepMenu, s.Step(), "input %q must return to menu", wrong)
		require.False(t, acct.called("deleteAccount"), "input %q must not delete", wrong)
	}
}

func TestDeleteWithLiteralInvokesOperation(t *testing.T) {
	done := make(chan struct{}, 1)
	s, sched, acct := startProfile(t, Events{OnComplete: func() { done <- struct{}{} }})

	submitLine(s, sched, "5")
	submitLine(s, sched, "DELETE")

	require.True(t, acct.called("deleteAccount"))
	require.True(t, hasLine(s, "Account deleted."))
	require.Equal(t, StepComplete, s.Step())
}

func TestDeleteFailureReturnsToMenu(t *testing.T) {
	acct := profileAccount()
	acct.DeleteAccountErr = &api.StatusError{StatusCode: 400, Message: "Account deletion failed"}
	s, sched := newTestSession(t, KindProfile, acct, Events{})
	startSession(t, s, sched)

	submitLine(s, sched, "5")
	submitLine(s, sched, "DELETE")

	require.True(t, hasLine(s, "[ERROR] Account deletion failed"))
	require.Equal(t, StepMenu, s.Step())
	require.True(t, s.Armed())
}

func TestSaveFailureReturnsToMenuWithServerMessage(t *testing.T) {
	acct := profileAccount()
	acct.SaveUsernameErr = &api.StatusError{StatusCode: 400, Message: "Username already taken"}
	s, sched := newTestSession(t, KindProfile, acct, Events{})
	startSession(t, s, sched)

	submitLine(s, sched, "1")
	submitLine(s, sched, "taken")
	submitLine(s, sched, "4")
	submitLine(s, sched, "y")

	require.True(t, hasLine(s, "[ERROR] Username already taken"))
	require.Equal(t, StepMenu, s.Step())
}

func TestLogoutClearsIdentityAndEnds(t *testing.T) {
	exited := make(chan struct{}, 1)
	s, sched, acct := startProfile(t, Events{OnExit: func() { exited <- struct{}{} }})

	submitLine(s, sched, "6")
	require.True(t, acct.called("logout"))
	require.True(t, hasLine(s, "You have been logged out."))
	require.Equal(t, StepEnded, s.Step())
	select {
	case <-exited:
	default:
		t.Fatal("OnExit should have fired")
	}
}

func TestProfileStartRefreshesFromBackend(t *testing.T) {
	acct := profileAccount()
	acct.ProfileRet = &api.Profile{Username: "alice2", Email: "alice2@example.com"}
	s, sched := newTestSession(t, KindProfile, acct, Events{})
	startSession(t, s, sched)

	require.True(t, acct.called("profile"))
	submitLine(s, sched, "3")
	require.True(t, hasLine(s, "Username: alice2"))
	require.True(t, hasLine(s, "Email: alice2@example.com"))
}

func TestReviewProfileShowsIdentityAndPendingChanges(t *testing.T) {
	s, sched, _ := startProfile(t, Events{})

	submitLine(s, sched, "1")
	submitLine(s, sched, "newname")

	submitLine(s, sched, "3")
	require.True(t, hasLine(s, "Username: alice"))
	require.True(t, hasLine(s, "Email: alice@example.com"))
	require.True(t, hasLine(s, "Pending: username -> newname"))
	require.Equal(t, StepMenu, s.Step())
	require.True(t, s.Armed())
}

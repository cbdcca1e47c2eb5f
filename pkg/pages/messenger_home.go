package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devicelab-dev/messenger-pages/pkg/core"
	"github.com/devicelab-dev/messenger-pages/pkg/element"
	"github.com/devicelab-dev/messenger-pages/pkg/gestures"
	"github.com/devicelab-dev/messenger-pages/pkg/logger"
	"github.com/devicelab-dev/messenger-pages/pkg/selectors"
)

// Wait timings of the messenger home screen.
const (
	UnreadBadgesTimeout      = 120 * time.Second
	AutoForwardTextTimeout   = 15 * time.Second
	FirstMsgTimeout          = 10 * time.Second
	MsgInConversationTimeout = 90 * time.Second
	BadgeCountTimeout        = 60 * time.Second
	EscTileTimeout           = 90 * time.Second
	SuccessDismissTimeout    = 10 * time.Second
	ScheduledMsgTileTimeout  = 30 * time.Second
	PatientTabTimeout        = 10 * time.Second
	NotificationTimeout      = 15 * time.Second

	pollInterval           = 500 * time.Millisecond
	successDismissInterval = time.Second
	shortCheck             = 2 * time.Second
	tileCheck              = 3 * time.Second
	scheduledCheck         = 4 * time.Second
	longCheck              = 5 * time.Second
	tileMenuHold           = 2 * time.Second
	bannerDisplayedTimeout = 5 * time.Second
	bannerTextTimeout      = 3 * time.Second
	unreadCountTimeout     = 5 * time.Second
	recoveryScrolls        = 5
	contentScrolls         = 3
	groupScrolls           = 2
)

// iOS call option drag offset on a patient tile.
const (
	callOptionDX = -100
	callOptionDY = 263
)

// MessengerHome is the inbox: the conversation roster with badges, tabs and
// long-press menus.
type MessengerHome struct {
	base
}

// Screen implements Page.
func (m *MessengerHome) Screen() Screen { return ScreenMessengerHome }

func (m *MessengerHome) clickTo(ctx context.Context, t element.Target, to Page) (Nav, error) {
	if err := m.h().Click(ctx, t); err != nil {
		return Stay(m), err
	}
	return NavigateTo(to), nil
}

func (m *MessengerHome) clickStay(ctx context.Context, t element.Target) (Nav, error) {
	if err := m.h().Click(ctx, t); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

func (m *MessengerHome) wait(ctx context.Context, t element.Target, timeout, interval time.Duration, reverse bool) error {
	return m.h().WaitForExist(ctx, t, timeout, interval, reverse)
}

// waitForOpen adds the slow-service wait for a conversation to finish opening.
func (m *MessengerHome) waitForOpen(ctx context.Context, waitForOpen bool) error {
	if !waitForOpen || !m.env().Slow() {
		return nil
	}
	return m.h().WaitUntil(ctx, m.app.Conversation.IsOpened, m.app.opts.OpenWait, "Failed For Wait For Conversation To Open")
}

// Conversations

// OpenExistingConversationInRosterTile taps the conversation tile of title.
func (m *MessengerHome) OpenExistingConversationInRosterTile(ctx context.Context, title string) (Nav, error) {
	return m.clickTo(ctx, selectors.ConversationTile(title), m.app.Conversation)
}

// OpenExistingPatientConversationInRosterTile taps the patient tile of title.
func (m *MessengerHome) OpenExistingPatientConversationInRosterTile(ctx context.Context, title string) (Nav, error) {
	return m.clickTo(ctx, selectors.PatientConversationTile(title), m.app.Conversation)
}

// OpenConversation opens the patient conversation of title.
func (m *MessengerHome) OpenConversation(ctx context.Context, title string) (Nav, error) {
	return m.OpenExistingPatientConversationInRosterTile(ctx, title)
}

// OpenForumConversation opens a forum conversation known to exist.
func (m *MessengerHome) OpenForumConversation(ctx context.Context, title string, waitForOpen bool) (Nav, error) {
	nav, err := m.OpenExistingConversationInRosterTile(ctx, title)
	if err != nil {
		return nav, err
	}
	if err := m.waitForOpen(ctx, waitForOpen); err != nil {
		return nav, err
	}
	return nav, nil
}

// OpenTigerPageConversation taps the tiger page message tile of userName.
func (m *MessengerHome) OpenTigerPageConversation(ctx context.Context, userName string) (Nav, error) {
	return m.clickTo(ctx, selectors.TigerPageMsgTile(userName), m.app.Conversation)
}

// OpenNewConversation taps the message tile titled msgTitle.
func (m *MessengerHome) OpenNewConversation(ctx context.Context, msgTitle string) (Nav, error) {
	return m.clickTo(ctx, selectors.MsgTileTitle(msgTitle), m.app.Conversation)
}

// OpenOptions tunes OpenExistingConversation.
type OpenOptions struct {
	WaitForOpen bool // wait for the conversation to open on slow services
	PatientSide bool // look for a patient tile instead of a conversation tile
}

// OpenExistingConversation makes sure the conversation titled title is open.
// When no conversation is open it goes back to the roster, scrolls to the
// tile and opens it, or composes a new message to title when the tile is not
// there. It is a best-effort recovery, not a guarantee.
func (m *MessengerHome) OpenExistingConversation(ctx context.Context, title string, opts OpenOptions) (Nav, error) {
	conv := m.app.Conversation
	opened, err := conv.IsOpened(ctx)
	if err != nil {
		return Stay(m), err
	}
	if !opened {
		if _, err := m.recoverConversation(ctx, title, opts); err != nil {
			return Stay(m), err
		}
		if err := m.waitForOpen(ctx, opts.WaitForOpen); err != nil {
			return Stay(m), err
		}
	}
	if err := m.g().SwipeUp(ctx, 1); err != nil {
		return NavigateTo(conv), err
	}
	return NavigateTo(conv), nil
}

func (m *MessengerHome) recoverConversation(ctx context.Context, title string, opts OpenOptions) (Nav, error) {
	logger.Info("conversation %q not open, recovering from the roster", title)
	if _, err := m.app.Conversation.NavigateBackToHome(ctx); err != nil {
		return Stay(m), err
	}
	if err := m.g().SwipeDown(ctx, 1); err != nil {
		return Stay(m), err
	}
	if m.env().IsIOS() && !opts.PatientSide {
		if _, err := m.app.Navigator.NavigateTo(ctx, PageSettings); err != nil {
			return Stay(m), err
		}
		if _, err := m.app.Navigator.NavigateTo(ctx, PageInbox); err != nil {
			return Stay(m), err
		}
	}

	tile := selectors.ConversationTile(title)
	if opts.PatientSide {
		tile = selectors.PatientConversationTile(title)
	}
	if _, err := m.g().ScrollUntilDisplayed(ctx, tile, recoveryScrolls, gestures.ScrollDown); err != nil {
		return Stay(m), err
	}
	present, err := m.present(ctx, tile, true, tileCheck)
	if err != nil {
		return Stay(m), err
	}
	if present {
		return m.clickTo(ctx, tile, m.app.Conversation)
	}

	logger.Info("no tile for %q, composing a new message", title)
	if _, err := m.app.Navigator.ClickPlus(ctx, ConversationIndividual); err != nil {
		return Stay(m), err
	}
	return m.app.NewConversation.ComposeNewMessage(ctx, title)
}

// RefreshMsgrHome pulls the roster to refresh it.
func (m *MessengerHome) RefreshMsgrHome(ctx context.Context) error {
	return m.g().SwipeDown(ctx, 1)
}

// Waits

// WaitAutoFwdConversation gives the auto-forwarded P2P conversation of
// userName a moment to show up. It does not fail when it does not.
func (m *MessengerHome) WaitAutoFwdConversation(ctx context.Context, userName string) (Nav, error) {
	if _, err := m.present(ctx, selectors.ConversationTileTextP2P(userName), true, tileCheck); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

// WaitForUnreadBadges waits for the unread pill with badgeCount. A zero
// maxWait means UnreadBadgesTimeout.
func (m *MessengerHome) WaitForUnreadBadges(ctx context.Context, badgeCount string, maxWait time.Duration) error {
	if maxWait <= 0 {
		maxWait = UnreadBadgesTimeout
	}
	return m.wait(ctx, selectors.UnreadBadgeCountMsgPill(badgeCount), maxWait, pollInterval, false)
}

// WaitForAutoForwardText waits for the auto-forwarding banner naming userName.
func (m *MessengerHome) WaitForAutoForwardText(ctx context.Context, userName string) error {
	return m.wait(ctx, selectors.RoleAutoForwardText(userName), AutoForwardTextTimeout, pollInterval, false)
}

// WaitForFirstMsgInList waits for the first message from userName. A zero
// maxWait means FirstMsgTimeout.
func (m *MessengerHome) WaitForFirstMsgInList(ctx context.Context, userName string, maxWait time.Duration) error {
	if maxWait <= 0 {
		maxWait = FirstMsgTimeout
	}
	return m.wait(ctx, selectors.TigerPageMsgTile(userName), maxWait, pollInterval, false)
}

// WaitForMsgInConversation waits for msgBody to appear, or to go away when
// visible is false.
func (m *MessengerHome) WaitForMsgInConversation(ctx context.Context, msgBody string, maxWait time.Duration, visible bool) error {
	if maxWait <= 0 {
		maxWait = MsgInConversationTimeout
	}
	return m.wait(ctx, selectors.TigerPageMsgTile(msgBody), maxWait, pollInterval, !visible)
}

// WaitForBadgeCount waits for the badge showing msgCount.
func (m *MessengerHome) WaitForBadgeCount(ctx context.Context, msgCount string) error {
	return m.wait(ctx, selectors.BadgeCount(msgCount), BadgeCountTimeout, pollInterval, false)
}

// WaitForEscTile waits for the escalation tile. A zero timeLimit means
// EscTileTimeout.
func (m *MessengerHome) WaitForEscTile(ctx context.Context, tileName string, timeLimit time.Duration) (Nav, error) {
	if timeLimit <= 0 {
		timeLimit = EscTileTimeout
	}
	if err := m.wait(ctx, selectors.EscalationTile(tileName), timeLimit, pollInterval, false); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

// WaitForSuccessDismiss waits for the success popup to go away.
func (m *MessengerHome) WaitForSuccessDismiss(ctx context.Context) error {
	return m.wait(ctx, selectors.SuccessPopup(), SuccessDismissTimeout, successDismissInterval, true)
}

// WaitForScheduledMsgTile waits for the scheduled message tile of displayName.
func (m *MessengerHome) WaitForScheduledMsgTile(ctx context.Context, displayName string) error {
	return m.wait(ctx, selectors.ScheduledMessageTileDisplayName(displayName), ScheduledMsgTileTimeout, pollInterval, false)
}

// Presence checks

func (m *MessengerHome) VerifyMsgTilePresents(ctx context.Context, userName string, expect bool) (bool, error) {
	return m.present(ctx, selectors.TigerPageMsgTile(userName), expect, longCheck)
}

func (m *MessengerHome) VerifyMsgBadgeCount(ctx context.Context, msgCount string, expect bool) (bool, error) {
	return m.present(ctx, selectors.BadgeCount(msgCount), expect, longCheck)
}

func (m *MessengerHome) IsGroupPhotoDisplayed(ctx context.Context) (bool, error) {
	return m.present(ctx, selectors.PhotoTakenElement(), true, 0)
}

func (m *MessengerHome) ConversationTilePresentByDisplayedMessage(ctx context.Context, message string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ConversationTileDisplayedMessage(message), expect, tileCheck)
}

func (m *MessengerHome) ConversationTilePresent(ctx context.Context, userDisplayName string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ConversationTile(userDisplayName), expect, tileCheck)
}

func (m *MessengerHome) ForwardGroupTilePresent(ctx context.Context, userDisplayName string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ForwardGroupTile(userDisplayName), expect, shortCheck)
}

func (m *MessengerHome) ConversationTileTextPresent(ctx context.Context, text string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ConversationTileText(text), expect, tileCheck)
}

func (m *MessengerHome) ConversationTileContains(ctx context.Context, text string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ConversationTileContainsText(text), expect, tileCheck)
}

func (m *MessengerHome) ConversationTilePresentPatientBroadcast(ctx context.Context, userDisplayName string, expect bool) (bool, error) {
	return m.present(ctx, selectors.PatientConversationTileBroadcast(userDisplayName), expect, longCheck)
}

func (m *MessengerHome) VerifyMemberCntDisplayed(ctx context.Context, countText string) (bool, error) {
	return m.present(ctx, selectors.MemberCountText(countText), true, tileCheck)
}

func (m *MessengerHome) LongPressPhoneButtonIsDisplayed(ctx context.Context, contactName string) (bool, error) {
	return m.present(ctx, selectors.LongPressCallButton(contactName), true, shortCheck)
}

// GetRoleMessagesBadgeCount checks the unread count of userName's tile sent
// to roleName.
func (m *MessengerHome) GetRoleMessagesBadgeCount(ctx context.Context, userName, roleName, unreadCount string, expect bool) (bool, error) {
	return m.present(ctx, selectors.RoleConversationTileUnreadMessageCount(userName, roleName, unreadCount), expect, longCheck)
}

func (m *MessengerHome) VerifyNetworkSwitchUnreadBadge(ctx context.Context, badgeCount string, expect bool) (bool, error) {
	return m.present(ctx, selectors.NetworkSwitchUnreadBadge(badgeCount), expect, tileCheck)
}

func (m *MessengerHome) VerifyOrgDropDownUnreadBadgeCount(ctx context.Context, orgName, count string, expect bool) (bool, error) {
	return m.present(ctx, selectors.OrgDropDownUnreadBadgeCount(orgName, count), expect, tileCheck)
}

func (m *MessengerHome) IsForumVisible(ctx context.Context, forumName string) (bool, error) {
	return m.present(ctx, selectors.ForumElement(forumName), true, 0)
}

// UserPresenceDisplayed waits for the presence indicator, then checks it.
func (m *MessengerHome) UserPresenceDisplayed(ctx context.Context, presence string) (bool, error) {
	if err := m.h().WaitForDisplayed(ctx, selectors.UserPresence(presence), element.DefaultTimeout); err != nil {
		return false, err
	}
	return m.present(ctx, selectors.UserPresence(presence), true, 0)
}

func (m *MessengerHome) IsGroupMessagePreviewDisplayed(ctx context.Context, groupName, message string) (bool, error) {
	return m.present(ctx, selectors.GroupConversationPreview(groupName, message), true, shortCheck)
}

func (m *MessengerHome) IsMessageFromRoleDisplayed(ctx context.Context, roleName, message string) (bool, error) {
	return m.present(ctx, selectors.DeliveredSentMessageStatus(roleName, message), true, shortCheck)
}

func (m *MessengerHome) IsConversationDetailsIconDisplayed(ctx context.Context) (bool, error) {
	return m.present(ctx, selectors.ConversationDetails(), true, shortCheck)
}

func (m *MessengerHome) IsMessengerPageBadgeCountDisplayed(ctx context.Context, badgeCount string) (bool, error) {
	return m.present(ctx, selectors.MessengerPageBadgeCount(badgeCount), true, shortCheck)
}

func (m *MessengerHome) IsSendingAsRoleTextDisplayed(ctx context.Context, roleName string) (bool, error) {
	return m.present(ctx, selectors.SendingAsRoleText(roleName), true, shortCheck)
}

// IsOnDutyTextFromSettingsDisplayed scrolls the conversation details to the
// on duty text of roleName and checks it.
func (m *MessengerHome) IsOnDutyTextFromSettingsDisplayed(ctx context.Context, roleName string) (bool, error) {
	return m.scrollThenCheck(ctx, selectors.OnDutyTextFromSettings(roleName))
}

// IsMessagePresent scrolls to message and checks it.
func (m *MessengerHome) IsMessagePresent(ctx context.Context, message string) (bool, error) {
	return m.scrollThenCheck(ctx, selectors.MessageContent(message))
}

func (m *MessengerHome) scrollThenCheck(ctx context.Context, t element.Target) (bool, error) {
	if _, err := m.g().ScrollUntilDisplayed(ctx, t, contentScrolls, gestures.ScrollDown); err != nil {
		return false, err
	}
	return m.present(ctx, t, true, shortCheck)
}

// ExpectedGroupPresent reports whether every group of groupNames can be
// brought on screen, scrolling both ways for each. Missing groups are logged.
func (m *MessengerHome) ExpectedGroupPresent(ctx context.Context, groupNames []string) (bool, error) {
	allPresent := true
	for _, name := range groupNames {
		group := selectors.GroupName(name)
		found, err := m.findGroup(ctx, group)
		if err != nil {
			return false, err
		}
		if !found {
			logger.Warn("Cannot find role: %s", name)
			allPresent = false
		}
	}
	return allPresent, nil
}

func (m *MessengerHome) findGroup(ctx context.Context, group element.Target) (bool, error) {
	present, err := m.present(ctx, group, true, 0)
	if err != nil || present {
		return present, err
	}
	if err := m.g().SwipeUp(ctx, 1); err != nil {
		return false, err
	}
	if _, err := m.g().CheckIfDisplayedWithScrollDown(ctx, group, groupScrolls); err != nil {
		return false, err
	}
	if present, err = m.present(ctx, group, true, 0); err != nil || present {
		return present, err
	}
	if err := m.g().SwipeDown(ctx, 1); err != nil {
		return false, err
	}
	if _, err := m.g().CheckIfDisplayedWithScrollUp(ctx, group, groupScrolls); err != nil {
		return false, err
	}
	return m.present(ctx, group, true, 0)
}

// Unread counts

// GetUnreadMsgCount returns the unread count of tileName.
func (m *MessengerHome) GetUnreadMsgCount(ctx context.Context, tileName string) (string, error) {
	return m.h().GetValue(ctx, selectors.UnreadCountByTile(tileName))
}

// GetUnreadMessagesCountByTile waits for the unread count of tileName to
// equal expect and returns the count read afterwards. A count that never
// matches is a soft failure: it is logged, a screenshot is taken and the
// result is not OK. Failing to read the count at all is an error.
func (m *MessengerHome) GetUnreadMessagesCountByTile(ctx context.Context, tileName, expect string) (Soft[string], error) {
	badge := selectors.UnreadCountByTile(tileName)
	waitErr := m.h().WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		v, err := m.h().GetValue(ctx, badge)
		if err != nil {
			return false, err
		}
		return v == expect, nil
	}, unreadCountTimeout, "Failed To Wait For Number Of Badge Count To Match Expected Count")

	var softErr error
	if waitErr != nil {
		if ctx.Err() != nil {
			return Soft[string]{}, ctx.Err()
		}
		softErr = m.soft(ctx, "unread-count-"+tileName, waitErr)
	}
	v, err := m.h().GetValue(ctx, badge)
	if err != nil {
		return Soft[string]{Err: err}, err
	}
	if softErr != nil {
		return softFail(v, softErr), nil
	}
	return softOK(v), nil
}

// GetUnreadMessagesCountByTileForPatient reads the patient badge on Android.
// On iOS the badge has no readable value, so only its presence is checked and
// the expected badgeCount is returned when it is there.
func (m *MessengerHome) GetUnreadMessagesCountByTileForPatient(ctx context.Context, patientName, badgeCount string) (Soft[string], error) {
	badge := selectors.UnreadCountByTilePatient(patientName, badgeCount)
	if m.env().IsAndroid() {
		v, err := m.h().GetValue(ctx, badge)
		if err != nil {
			if errors.Is(err, core.ErrElementNotFound) {
				logger.Warn("patient badge of %s not found: %v", patientName, err)
				return softFail("", err), nil
			}
			return Soft[string]{Err: err}, err
		}
		return softOK(v), nil
	}
	present, err := m.present(ctx, badge, true, tileCheck)
	if err != nil {
		return Soft[string]{Err: err}, err
	}
	if !present {
		return softFail("", core.ErrElementNotFound.WithMessagef("patient badge %s of %s not present", badgeCount, patientName)), nil
	}
	return softOK(badgeCount), nil
}

// UnreadMessageBadgeCountPresent checks the P2P unread badge of tileName.
func (m *MessengerHome) UnreadMessageBadgeCountPresent(ctx context.Context, tileName string) (bool, error) {
	return m.present(ctx, selectors.UnreadCountP2P(tileName), true, 0)
}

// GetOnDutyBannerText waits for the on duty banner and returns its text. The
// result is not OK when the text does not come to contain expectedText.
func (m *MessengerHome) GetOnDutyBannerText(ctx context.Context, expectedText string) (Soft[string], error) {
	banner := selectors.OnDutyBanner()
	if err := m.h().WaitForDisplayed(ctx, banner, bannerDisplayedTimeout); err != nil {
		return Soft[string]{Err: err}, err
	}
	waitErr := m.h().WaitUntil(ctx, func(ctx context.Context) (bool, error) {
		text, err := m.h().GetText(ctx, banner)
		if err != nil {
			return false, err
		}
		return strings.Contains(text, expectedText), nil
	}, bannerTextTimeout, "Unable to get on duty banner text within 3s")
	if waitErr != nil && ctx.Err() != nil {
		return Soft[string]{}, ctx.Err()
	}

	text, err := m.h().GetText(ctx, banner)
	if err != nil {
		return Soft[string]{Err: err}, err
	}
	if waitErr != nil {
		logger.Warn("Unable to get on duty banner text: %v", waitErr)
		return softFail(text, core.ErrConditionNotMet.WithMessagef("on duty banner %q does not contain %q", text, expectedText).WithCause(waitErr)), nil
	}
	return softOK(text), nil
}

// GetPatientInfo returns the details line of patient.
func (m *MessengerHome) GetPatientInfo(ctx context.Context, patient string) (string, error) {
	return m.h().GetValue(ctx, selectors.PatientInfoDetails(patient))
}

// Tile menus

// OpenConversationTileMenu opens the long-press menu of tileName. iOS has no
// long-press menu on the roster; the tile is dragged to reveal its call
// option instead.
func (m *MessengerHome) OpenConversationTileMenu(ctx context.Context, tileName string) (Nav, error) {
	if m.env().IsAndroid() {
		if err := m.h().PressAndHold(ctx, selectors.ConversationTile(tileName), tileMenuHold); err != nil {
			return Stay(m), err
		}
		return Stay(m), nil
	}
	return m.GetCallOptionFromExistingConversation(ctx, tileName)
}

// GetCallOptionFromExistingConversation drags the patient tile of
// userDisplayName to reveal its call option.
func (m *MessengerHome) GetCallOptionFromExistingConversation(ctx context.Context, userDisplayName string) (Nav, error) {
	if err := m.h().MoveTo(ctx, callOptionDX, callOptionDY, selectors.PatientTileName(userDisplayName)); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

// ClickLongPressMarkAllAsReadButton taps "mark all as read". Android only;
// a no-op on iOS.
func (m *MessengerHome) ClickLongPressMarkAllAsReadButton(ctx context.Context) (Nav, error) {
	if !m.env().IsAndroid() {
		return Stay(m), nil
	}
	return m.clickStay(ctx, selectors.LongPressMarkAllAsRead())
}

func (m *MessengerHome) ClickLongPressMute(ctx context.Context) (Nav, error) {
	return m.clickStay(ctx, selectors.MuteConversation())
}

func (m *MessengerHome) ClickLongPressDeleteButton(ctx context.Context) (Nav, error) {
	return m.clickStay(ctx, selectors.LongPressDeleteButton())
}

func (m *MessengerHome) ClickCancelDelete(ctx context.Context) (Nav, error) {
	return m.clickStay(ctx, selectors.CancelDeleteButton())
}

func (m *MessengerHome) ClickYesDelete(ctx context.Context) (Nav, error) {
	return m.clickStay(ctx, selectors.YesDeleteButton())
}

// DenyEnableCallerIDPopUp dismisses the caller id popup when it shows.
// Android only. It reports whether the popup was dismissed.
func (m *MessengerHome) DenyEnableCallerIDPopUp(ctx context.Context) (bool, error) {
	if !m.env().IsAndroid() {
		return false, nil
	}
	shown, err := m.present(ctx, selectors.DenyCallerIDButton(), true, 0)
	if err != nil || !shown {
		return false, err
	}
	if _, err := m.h().ClickIfExists(ctx, selectors.DenyCallerIDButton(), 0); err != nil {
		return false, err
	}
	return m.h().ClickIfExists(ctx, selectors.EnableCallerIDOKButton(), 0)
}

// Navigation

// GoToRolesPage taps the roles icon.
func (m *MessengerHome) GoToRolesPage(ctx context.Context) (Nav, error) {
	return m.clickTo(ctx, selectors.RolesIcon(), m.app.Roles)
}

// GoToSettingsPage taps the settings icon, which on iOS is labeled with the
// user's first name.
func (m *MessengerHome) GoToSettingsPage(ctx context.Context) (Nav, error) {
	return m.clickTo(ctx, selectors.SettingsIcon(m.app.opts.UserFirstName), m.app.Settings)
}

// SelectPatientTab taps the patient tab when it shows up.
func (m *MessengerHome) SelectPatientTab(ctx context.Context, tabName string) (Nav, error) {
	if _, err := m.h().ClickIfExists(ctx, selectors.PatientTab(tabName), PatientTabTimeout); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

// SelectPatientTabSmoke taps the patient tab, failing when it is absent.
func (m *MessengerHome) SelectPatientTabSmoke(ctx context.Context, tabName string) (Nav, error) {
	return m.clickStay(ctx, selectors.PatientTab(tabName))
}

// Scheduled messages

func (m *MessengerHome) ClickScheduledMessagePills(ctx context.Context, pillName string) (Nav, error) {
	return m.clickStay(ctx, selectors.ScheduledMessageTabPill(pillName))
}

func (m *MessengerHome) IsRepeatMsgOptionDisplayed(ctx context.Context, occurrence string) (bool, error) {
	return m.present(ctx, selectors.RepeatMsgOption(occurrence), true, longCheck)
}

func (m *MessengerHome) IsScheduledMessageTileDisplayed(ctx context.Context, displayName string, expect bool) (bool, error) {
	return m.present(ctx, selectors.ScheduledMessageTileDisplayName(displayName), expect, scheduledCheck)
}

func (m *MessengerHome) VerifyScheduledMsgDisplayed(ctx context.Context, displayName string) (bool, error) {
	return m.present(ctx, selectors.ScheduledMsgDisplayName(displayName), true, scheduledCheck)
}

func (m *MessengerHome) VerifyMsgScheduled(ctx context.Context) (bool, error) {
	return m.present(ctx, selectors.MsgScheduledText(), true, tileCheck)
}

func (m *MessengerHome) IsSentDeliveredStatusDisplayed(ctx context.Context, displayName, status string) (bool, error) {
	return m.present(ctx, selectors.ScheduledMessageStatus(displayName, status), true, longCheck)
}

func (m *MessengerHome) ClickOnScheduledMessageTile(ctx context.Context, displayName string) (Nav, error) {
	return m.clickStay(ctx, selectors.ScheduledMessageTileDisplayName(displayName))
}

func (m *MessengerHome) IsRepeatMessageTileDisplayName(ctx context.Context, displayName, occurrence string) (bool, error) {
	return m.present(ctx, selectors.RepeatMessageTileDisplayName(displayName, occurrence), true, longCheck)
}

// Conversation settings

// OpenConversationSettings opens the settings of the conversation titled
// conversationTitle, opening the conversation first when needed.
func (m *MessengerHome) OpenConversationSettings(ctx context.Context, conversationTitle string) (Nav, error) {
	shown, err := m.IsConversationDetailsIconDisplayed(ctx)
	if err != nil {
		return Stay(m), err
	}
	if !shown {
		if _, err := m.OpenExistingConversationInRosterTile(ctx, conversationTitle); err != nil {
			return Stay(m), err
		}
	}
	if err := m.h().ClickWithin(ctx, selectors.ConversationDetails(), shortCheck); err != nil {
		return NavigateTo(m.app.Conversation), err
	}
	if err := m.h().ClickWithin(ctx, selectors.ConversationSettings(), shortCheck); err != nil {
		return NavigateTo(m.app.Conversation), err
	}
	return NavigateTo(m.app.Conversation), nil
}

// GoBackFromConversationSettings closes the conversation settings.
func (m *MessengerHome) GoBackFromConversationSettings(ctx context.Context) (Nav, error) {
	if err := m.h().ClickWithin(ctx, selectors.GoBackFromConversationSettings(), shortCheck); err != nil {
		return NavigateTo(m.app.Conversation), err
	}
	return NavigateTo(m.app.Conversation), nil
}

// XButtonToCloseConversation closes the open conversation.
func (m *MessengerHome) XButtonToCloseConversation(ctx context.Context) (Nav, error) {
	if err := m.h().ClickWithin(ctx, selectors.CloseConversation(), shortCheck); err != nil {
		return NavigateTo(m.app.Conversation), err
	}
	return NavigateTo(m), nil
}

// Notifications

// NotificationAction is what AppNotification does.
type NotificationAction string

// Notification actions.
const (
	NotificationOpen    NotificationAction = "open"
	NotificationPresent NotificationAction = "present"
	NotificationClick   NotificationAction = "click"
)

// ParseNotificationAction parses an action name, case-insensitively.
func ParseNotificationAction(s string) (NotificationAction, error) {
	switch a := NotificationAction(strings.ToLower(s)); a {
	case NotificationOpen, NotificationPresent, NotificationClick:
		return a, nil
	default:
		return "", fmt.Errorf("unknown notification action %q", s)
	}
}

// OpenAppNotifications pulls down the notification shade.
func (m *MessengerHome) OpenAppNotifications(ctx context.Context) (Nav, error) {
	if err := m.h().OpenNotifications(ctx); err != nil {
		return Stay(m), err
	}
	return Stay(m), nil
}

// AppNotificationPresent checks for a notification containing text.
func (m *MessengerHome) AppNotificationPresent(ctx context.Context, text string) (bool, error) {
	return m.present(ctx, selectors.AppNotification(text), true, 0)
}

// ClickAppNotification taps the notification containing text when it shows
// up, and reports whether it did.
func (m *MessengerHome) ClickAppNotification(ctx context.Context, text string) (bool, error) {
	return m.h().ClickIfExists(ctx, selectors.AppNotification(text), NotificationTimeout)
}

// AppNotification runs action on the notification containing text. The
// boolean is the presence for NotificationPresent and whether it clicked for
// NotificationClick.
func (m *MessengerHome) AppNotification(ctx context.Context, action NotificationAction, text string) (bool, error) {
	switch action {
	case NotificationOpen:
		_, err := m.OpenAppNotifications(ctx)
		return err == nil, err
	case NotificationPresent:
		return m.AppNotificationPresent(ctx, text)
	case NotificationClick:
		return m.ClickAppNotification(ctx, text)
	default:
		return false, fmt.Errorf("unknown notification action %q", action)
	}
}

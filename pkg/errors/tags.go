package errors

// Tag is the stable snake_case wire name of an error kind. Tags are the keys
// of the translation catalog and the value of the "error" field in API error
// bodies; renaming or removing one is a breaking change for clients.
type Tag string

// Error kind tags, in declaration order. New tags are appended; existing
// values never change.
const (
	TagReportReasonRequired                                 Tag = "report_reason_required"
	TagReportTooLong                                        Tag = "report_too_long"
	TagNotAModerator                                        Tag = "not_a_moderator"
	TagNotAnAdmin                                           Tag = "not_an_admin"
	TagCantBlockYourself                                    Tag = "cant_block_yourself"
	TagCantBlockAdmin                                       Tag = "cant_block_admin"
	TagCouldntUpdateUser                                    Tag = "couldnt_update_user"
	TagPasswordsDoNotMatch                                  Tag = "passwords_do_not_match"
	TagPasswordIncorrect                                    Tag = "password_incorrect"
	TagEmailNotVerified                                     Tag = "email_not_verified"
	TagEmailRequired                                        Tag = "email_required"
	TagCouldntUpdateComment                                 Tag = "couldnt_update_comment"
	TagCouldntUpdatePrivateMessage                          Tag = "couldnt_update_private_message"
	TagCannotLeaveAdmin                                     Tag = "cannot_leave_admin"
	TagNoLinesInHTML                                        Tag = "no_lines_in_html"
	TagSiteMetadataPageIsNotDoctypeHTML                     Tag = "site_metadata_page_is_not_doctype_html"
	TagPictrsResponseError                                  Tag = "pictrs_response_error"
	TagPictrsPurgeResponseError                             Tag = "pictrs_purge_response_error"
	TagImageURLMissingPathSegments                          Tag = "image_url_missing_path_segments"
	TagImageURLMissingLastPathSegment                       Tag = "image_url_missing_last_path_segment"
	TagPictrsAPIKeyNotProvided                              Tag = "pictrs_api_key_not_provided"
	TagNoContentTypeHeader                                  Tag = "no_content_type_header"
	TagNotAnImageType                                       Tag = "not_an_image_type"
	TagNotAModOrAdmin                                       Tag = "not_a_mod_or_admin"
	TagNoAdmins                                             Tag = "no_admins"
	TagNotTopAdmin                                          Tag = "not_top_admin"
	TagNotTopMod                                            Tag = "not_top_mod"
	TagNotLoggedIn                                          Tag = "not_logged_in"
	TagSiteBan                                              Tag = "site_ban"
	TagDeleted                                              Tag = "deleted"
	TagBannedFromCommunity                                  Tag = "banned_from_community"
	TagCouldntFindCommunity                                 Tag = "couldnt_find_community"
	TagPersonIsBlocked                                      Tag = "person_is_blocked"
	TagDownvotesAreDisabled                                 Tag = "downvotes_are_disabled"
	TagInstanceIsPrivate                                    Tag = "instance_is_private"
	TagInvalidPassword                                      Tag = "invalid_password"
	TagSiteDescriptionLengthOverflow                        Tag = "site_description_length_overflow"
	TagHoneypotFailed                                       Tag = "honeypot_failed"
	TagRegistrationApplicationIsPending                     Tag = "registration_application_is_pending"
	TagCantEnablePrivateInstanceAndFederationTogether       Tag = "cant_enable_private_instance_and_federation_together"
	TagLocked                                               Tag = "locked"
	TagCouldntCreateComment                                 Tag = "couldnt_create_comment"
	TagMaxCommentDepthReached                               Tag = "max_comment_depth_reached"
	TagNoCommentEditAllowed                                 Tag = "no_comment_edit_allowed"
	TagOnlyAdminsCanCreateCommunities                       Tag = "only_admins_can_create_communities"
	TagCommunityAlreadyExists                               Tag = "community_already_exists"
	TagLanguageNotAllowed                                   Tag = "language_not_allowed"
	TagOnlyModsCanPostInCommunity                           Tag = "only_mods_can_post_in_community"
	TagCouldntUpdatePost                                    Tag = "couldnt_update_post"
	TagNoPostEditAllowed                                    Tag = "no_post_edit_allowed"
	TagCouldntFindPost                                      Tag = "couldnt_find_post"
	TagEditPrivateMessageNotAllowed                         Tag = "edit_private_message_not_allowed"
	TagSiteAlreadyExists                                    Tag = "site_already_exists"
	TagApplicationQuestionRequired                          Tag = "application_question_required"
	TagInvalidDefaultPostListingType                        Tag = "invalid_default_post_listing_type"
	TagRegistrationClosed                                   Tag = "registration_closed"
	TagRegistrationApplicationAnswerRequired                Tag = "registration_application_answer_required"
	TagEmailAlreadyExists                                   Tag = "email_already_exists"
	TagFederationForbiddenByStrictAllowList                 Tag = "federation_forbidden_by_strict_allow_list"
	TagPersonIsBannedFromCommunity                          Tag = "person_is_banned_from_community"
	TagObjectIsNotPublic                                    Tag = "object_is_not_public"
	TagInvalidCommunity                                     Tag = "invalid_community"
	TagCannotCreatePostOrCommentInDeletedOrRemovedCommunity Tag = "cannot_create_post_or_comment_in_deleted_or_removed_community"
	TagCannotReceivePage                                    Tag = "cannot_receive_page"
	TagNewPostCannotBeLocked                                Tag = "new_post_cannot_be_locked"
	TagOnlyLocalAdminCanRemoveCommunity                     Tag = "only_local_admin_can_remove_community"
	TagOnlyLocalAdminCanRestoreCommunity                    Tag = "only_local_admin_can_restore_community"
	TagNoIDGiven                                            Tag = "no_id_given"
	TagCouldntFindUsernameOrEmail                           Tag = "couldnt_find_username_or_email"
	TagInvalidQuery                                         Tag = "invalid_query"
	TagObjectNotLocal                                       Tag = "object_not_local"
	TagPostIsLocked                                         Tag = "post_is_locked"
	TagPersonIsBannedFromSite                               Tag = "person_is_banned_from_site"
	TagInvalidVoteValue                                     Tag = "invalid_vote_value"
	TagPageDoesNotSpecifyCreator                            Tag = "page_does_not_specify_creator"
	TagPageDoesNotSpecifyGroup                              Tag = "page_does_not_specify_group"
	TagNoCommunityFoundInCc                                 Tag = "no_community_found_in_cc"
	TagNoEmailSetup                                         Tag = "no_email_setup"
	TagEmailSMTPServerNeedsAPort                            Tag = "email_smtp_server_needs_a_port"
	TagMissingAnEmail                                       Tag = "missing_an_email"
	TagRateLimitError                                       Tag = "rate_limit_error"
	TagInvalidName                                          Tag = "invalid_name"
	TagInvalidDisplayName                                   Tag = "invalid_display_name"
	TagInvalidMatrixID                                      Tag = "invalid_matrix_id"
	TagInvalidPostTitle                                     Tag = "invalid_post_title"
	TagInvalidBodyField                                     Tag = "invalid_body_field"
	TagBioLengthOverflow                                    Tag = "bio_length_overflow"
	TagMissingTOTPToken                                     Tag = "missing_totp_token"
	TagIncorrectTOTPToken                                   Tag = "incorrect_totp_token"
	TagCouldntParseTOTPSecret                               Tag = "couldnt_parse_totp_secret"
	TagCouldntLikeComment                                   Tag = "couldnt_like_comment"
	TagCouldntSaveComment                                   Tag = "couldnt_save_comment"
	TagCouldntCreateReport                                  Tag = "couldnt_create_report"
	TagCouldntResolveReport                                 Tag = "couldnt_resolve_report"
	TagCommunityModeratorAlreadyExists                      Tag = "community_moderator_already_exists"
	TagCommunityUserAlreadyBanned                           Tag = "community_user_already_banned"
	TagCommunityBlockAlreadyExists                          Tag = "community_block_already_exists"
	TagCommunityFollowerAlreadyExists                       Tag = "community_follower_already_exists"
	TagCouldntUpdateCommunityHiddenStatus                   Tag = "couldnt_update_community_hidden_status"
	TagPersonBlockAlreadyExists                             Tag = "person_block_already_exists"
	TagUserAlreadyExists                                    Tag = "user_already_exists"
	TagTokenNotFound                                        Tag = "token_not_found"
	TagCouldntLikePost                                      Tag = "couldnt_like_post"
	TagCouldntSavePost                                      Tag = "couldnt_save_post"
	TagCouldntMarkPostAsRead                                Tag = "couldnt_mark_post_as_read"
	TagCouldntUpdateCommunity                               Tag = "couldnt_update_community"
	TagCouldntUpdateReplies                                 Tag = "couldnt_update_replies"
	TagCouldntUpdatePersonMentions                          Tag = "couldnt_update_person_mentions"
	TagPostTitleTooLong                                     Tag = "post_title_too_long"
	TagCouldntCreatePost                                    Tag = "couldnt_create_post"
	TagCouldntCreatePrivateMessage                          Tag = "couldnt_create_private_message"
	TagCouldntUpdatePrivate                                 Tag = "couldnt_update_private"
	TagSystemErrLogin                                       Tag = "system_err_login"
	TagCouldntSetAllRegistrationsAccepted                   Tag = "couldnt_set_all_registrations_accepted"
	TagCouldntSetAllEmailVerified                           Tag = "couldnt_set_all_email_verified"
	TagBanned                                               Tag = "banned"
	TagCouldntGetComments                                   Tag = "couldnt_get_comments"
	TagCouldntGetPosts                                      Tag = "couldnt_get_posts"
	TagInvalidURL                                           Tag = "invalid_url"
	TagEmailSendFailed                                      Tag = "email_send_failed"
	TagSlurs                                                Tag = "slurs"
	TagCouldntGenerateTOTP                                  Tag = "couldnt_generate_totp"
	TagCouldntFindObject                                    Tag = "couldnt_find_object"
	TagRegistrationDenied                                   Tag = "registration_denied"
	TagFederationDisabled                                   Tag = "federation_disabled"
	TagDomainBlocked                                        Tag = "domain_blocked"
	TagDomainNotInAllowList                                 Tag = "domain_not_in_allow_list"
	TagFederationDisabledByStrictAllowList                  Tag = "federation_disabled_by_strict_allow_list"
	TagSiteNameRequired                                     Tag = "site_name_required"
	TagSiteNameLengthOverflow                               Tag = "site_name_length_overflow"
	TagPermissiveRegex                                      Tag = "permissive_regex"
	TagInvalidRegex                                         Tag = "invalid_regex"
	TagCaptchaIncorrect                                     Tag = "captcha_incorrect"
	TagPasswordResetLimitReached                            Tag = "password_reset_limit_reached"
	TagCouldntCreateAudioCaptcha                            Tag = "couldnt_create_audio_captcha"
	TagUnknown                                              Tag = "unknown"
)

// tagSpec is one registry row: a tag and whether its kind carries a message.
type tagSpec struct {
	tag     Tag
	payload bool
}

// registry is the closed set of error kinds in declaration order. It is the
// only place the payload arity of a tag is recorded.
var registry = [...]tagSpec{
	{TagReportReasonRequired, false},
	{TagReportTooLong, false},
	{TagNotAModerator, false},
	{TagNotAnAdmin, false},
	{TagCantBlockYourself, false},
	{TagCantBlockAdmin, false},
	{TagCouldntUpdateUser, false},
	{TagPasswordsDoNotMatch, false},
	{TagPasswordIncorrect, false},
	{TagEmailNotVerified, false},
	{TagEmailRequired, false},
	{TagCouldntUpdateComment, false},
	{TagCouldntUpdatePrivateMessage, false},
	{TagCannotLeaveAdmin, false},
	{TagNoLinesInHTML, false},
	{TagSiteMetadataPageIsNotDoctypeHTML, false},
	{TagPictrsResponseError, true},
	{TagPictrsPurgeResponseError, true},
	{TagImageURLMissingPathSegments, false},
	{TagImageURLMissingLastPathSegment, false},
	{TagPictrsAPIKeyNotProvided, false},
	{TagNoContentTypeHeader, false},
	{TagNotAnImageType, false},
	{TagNotAModOrAdmin, false},
	{TagNoAdmins, false},
	{TagNotTopAdmin, false},
	{TagNotTopMod, false},
	{TagNotLoggedIn, false},
	{TagSiteBan, false},
	{TagDeleted, false},
	{TagBannedFromCommunity, false},
	{TagCouldntFindCommunity, false},
	{TagPersonIsBlocked, false},
	{TagDownvotesAreDisabled, false},
	{TagInstanceIsPrivate, false},
	{TagInvalidPassword, false},
	{TagSiteDescriptionLengthOverflow, false},
	{TagHoneypotFailed, false},
	{TagRegistrationApplicationIsPending, false},
	{TagCantEnablePrivateInstanceAndFederationTogether, false},
	{TagLocked, false},
	{TagCouldntCreateComment, false},
	{TagMaxCommentDepthReached, false},
	{TagNoCommentEditAllowed, false},
	{TagOnlyAdminsCanCreateCommunities, false},
	{TagCommunityAlreadyExists, false},
	{TagLanguageNotAllowed, false},
	{TagOnlyModsCanPostInCommunity, false},
	{TagCouldntUpdatePost, false},
	{TagNoPostEditAllowed, false},
	{TagCouldntFindPost, false},
	{TagEditPrivateMessageNotAllowed, false},
	{TagSiteAlreadyExists, false},
	{TagApplicationQuestionRequired, false},
	{TagInvalidDefaultPostListingType, false},
	{TagRegistrationClosed, false},
	{TagRegistrationApplicationAnswerRequired, false},
	{TagEmailAlreadyExists, false},
	{TagFederationForbiddenByStrictAllowList, false},
	{TagPersonIsBannedFromCommunity, false},
	{TagObjectIsNotPublic, false},
	{TagInvalidCommunity, false},
	{TagCannotCreatePostOrCommentInDeletedOrRemovedCommunity, false},
	{TagCannotReceivePage, false},
	{TagNewPostCannotBeLocked, false},
	{TagOnlyLocalAdminCanRemoveCommunity, false},
	{TagOnlyLocalAdminCanRestoreCommunity, false},
	{TagNoIDGiven, false},
	{TagCouldntFindUsernameOrEmail, false},
	{TagInvalidQuery, false},
	{TagObjectNotLocal, false},
	{TagPostIsLocked, false},
	{TagPersonIsBannedFromSite, false},
	{TagInvalidVoteValue, false},
	{TagPageDoesNotSpecifyCreator, false},
	{TagPageDoesNotSpecifyGroup, false},
	{TagNoCommunityFoundInCc, false},
	{TagNoEmailSetup, false},
	{TagEmailSMTPServerNeedsAPort, false},
	{TagMissingAnEmail, false},
	{TagRateLimitError, false},
	{TagInvalidName, false},
	{TagInvalidDisplayName, false},
	{TagInvalidMatrixID, false},
	{TagInvalidPostTitle, false},
	{TagInvalidBodyField, false},
	{TagBioLengthOverflow, false},
	{TagMissingTOTPToken, false},
	{TagIncorrectTOTPToken, false},
	{TagCouldntParseTOTPSecret, false},
	{TagCouldntLikeComment, false},
	{TagCouldntSaveComment, false},
	{TagCouldntCreateReport, false},
	{TagCouldntResolveReport, false},
	{TagCommunityModeratorAlreadyExists, false},
	{TagCommunityUserAlreadyBanned, false},
	{TagCommunityBlockAlreadyExists, false},
	{TagCommunityFollowerAlreadyExists, false},
	{TagCouldntUpdateCommunityHiddenStatus, false},
	{TagPersonBlockAlreadyExists, false},
	{TagUserAlreadyExists, false},
	{TagTokenNotFound, false},
	{TagCouldntLikePost, false},
	{TagCouldntSavePost, false},
	{TagCouldntMarkPostAsRead, false},
	{TagCouldntUpdateCommunity, false},
	{TagCouldntUpdateReplies, false},
	{TagCouldntUpdatePersonMentions, false},
	{TagPostTitleTooLong, false},
	{TagCouldntCreatePost, false},
	{TagCouldntCreatePrivateMessage, false},
	{TagCouldntUpdatePrivate, false},
	{TagSystemErrLogin, false},
	{TagCouldntSetAllRegistrationsAccepted, false},
	{TagCouldntSetAllEmailVerified, false},
	{TagBanned, false},
	{TagCouldntGetComments, false},
	{TagCouldntGetPosts, false},
	{TagInvalidURL, false},
	{TagEmailSendFailed, false},
	{TagSlurs, false},
	{TagCouldntGenerateTOTP, false},
	{TagCouldntFindObject, false},
	{TagRegistrationDenied, true},
	{TagFederationDisabled, false},
	{TagDomainBlocked, false},
	{TagDomainNotInAllowList, false},
	{TagFederationDisabledByStrictAllowList, false},
	{TagSiteNameRequired, false},
	{TagSiteNameLengthOverflow, false},
	{TagPermissiveRegex, false},
	{TagInvalidRegex, false},
	{TagCaptchaIncorrect, false},
	{TagPasswordResetLimitReached, false},
	{TagCouldntCreateAudioCaptcha, false},
	{TagUnknown, false},
}

// KindCount is the number of declared error kinds.
const KindCount = len(registry)

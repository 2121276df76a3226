package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

var (
	listQuery      string
	listHasEmail   bool
	listHasPhone   bool
	listHasCompany bool
	listAfter      string
	listBefore     string
	listSort       string
	listDesc       bool
	listPage       int
	listPageSize   int
	listJSON       bool
	listRemote     bool
)

var (
	contactFirstName string
	contactLastName  string
	contactEmail     string
	contactPhone     string
	contactCompany   string
	contactNotes     string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage HubSpot contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `Loads all contacts and applies search, filters, sorting, and
pagination locally. Flag defaults come from saved preferences.
Use --remote to search on the server instead.`,
	RunE: runContactsList,
}

var contactsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsGet,
}

var contactsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact",
	RunE:  runContactsCreate,
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsUpdate,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

func init() {
	f := contactsListCmd.Flags()
	f.StringVarP(&listQuery, "query", "q", "", "free-text search query")
	f.BoolVar(&listHasEmail, "has-email", false, "only contacts with an email address")
	f.BoolVar(&listHasPhone, "has-phone", false, "only contacts with a phone number")
	f.BoolVar(&listHasCompany, "has-company", false, "only contacts with a company")
	f.StringVar(&listAfter, "created-after", "", "only contacts created on or after this date (YYYY-MM-DD)")
	f.StringVar(&listBefore, "created-before", "", "only contacts created on or before this date (YYYY-MM-DD)")
	f.StringVar(&listSort, "sort", "", "sort field (firstname, lastname, email, phone, company, createdate, lastmodifieddate)")
	f.BoolVar(&listDesc, "desc", false, "sort descending")
	f.IntVar(&listPage, "page", 1, "page number")
	f.IntVar(&listPageSize, "page-size", 0, "contacts per page")
	f.BoolVar(&listJSON, "json", false, "output as JSON")
	f.BoolVar(&listRemote, "remote", false, "search on the server instead of locally")

	for _, cmd := range []*cobra.Command{contactsCreateCmd, contactsUpdateCmd} {
		cf := cmd.Flags()
		cf.StringVar(&contactFirstName, "first-name", "", "first name")
		cf.StringVar(&contactLastName, "last-name", "", "last name")
		cf.StringVar(&contactEmail, "email", "", "email address")
		cf.StringVar(&contactPhone, "phone", "", "phone number")
		cf.StringVar(&contactCompany, "company", "", "company name")
		cf.StringVar(&contactNotes, "notes", "", "notes")
	}

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsCreateCmd)
	contactsCmd.AddCommand(contactsUpdateCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)
	rootCmd.AddCommand(contactsCmd)
}

// ensureConnected connects on demand so contact commands work from a
// cold start.
func ensureConnected(cmd *cobra.Command) error {
	if sessionService == nil || contactService == nil {
		return errors.New("services not configured")
	}
	if sessionService.State() == domain.StateConnected {
		return nil
	}

	userID, orgID := identity()
	cmd.Println("Not connected. Opening HubSpot authorization window...")
	return sessionService.Connect(cmd.Context(), userID, orgID)
}

// listCriteria builds filter criteria from flags, falling back to saved
// preferences for flags the user did not pass.
func listCriteria(cmd *cobra.Command) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		HasEmail:   listHasEmail,
		HasPhone:   listHasPhone,
		HasCompany: listHasCompany,
	}

	if prefStore != nil {
		if !cmd.Flags().Changed("has-email") {
			criteria.HasEmail = prefStore.GetBool(driven.PrefHasEmail)
		}
		if !cmd.Flags().Changed("has-phone") {
			criteria.HasPhone = prefStore.GetBool(driven.PrefHasPhone)
		}
		if !cmd.Flags().Changed("has-company") {
			criteria.HasCompany = prefStore.GetBool(driven.PrefHasCompany)
		}
	}

	if listAfter != "" || listBefore != "" {
		r := &domain.DateRange{}
		if listAfter != "" {
			start, err := time.Parse("2006-01-02", listAfter)
			if err != nil {
				return criteria, fmt.Errorf("invalid --created-after date: %w", err)
			}
			r.Start = start
		}
		if listBefore != "" {
			end, err := time.Parse("2006-01-02", listBefore)
			if err != nil {
				return criteria, fmt.Errorf("invalid --created-before date: %w", err)
			}
			// Inclusive end of day.
			r.End = end.Add(24*time.Hour - time.Nanosecond)
		} else {
			r.End = time.Now()
		}
		criteria.Created = r
	}

	return criteria, nil
}

func parseSortField(name string) (domain.SortField, error) {
	switch domain.SortField(name) {
	case "", domain.SortByFirstName, domain.SortByLastName, domain.SortByEmail,
		domain.SortByPhone, domain.SortByCompany, domain.SortByCreateDate,
		domain.SortByLastModifiedDate:
		return domain.SortField(name), nil
	}
	return "", fmt.Errorf("unknown sort field %q", name)
}

func runContactsList(cmd *cobra.Command, _ []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	criteria, err := listCriteria(cmd)
	if err != nil {
		return err
	}

	if listRemote {
		results, err := contactService.SearchRemote(cmd.Context(), listQuery, criteria)
		if err != nil {
			return err
		}
		if listJSON {
			return outputJSON(cmd, results)
		}
		printContactRows(cmd, results)
		cmd.Printf("\n%d contacts (server search)\n", len(results))
		return nil
	}

	if err := contactService.Load(cmd.Context()); err != nil {
		return err
	}

	sortField := listSort
	if sortField == "" && prefStore != nil {
		sortField = prefStore.GetString(driven.PrefSortField)
	}
	field, err := parseSortField(sortField)
	if err != nil {
		return err
	}

	direction := domain.SortAsc
	if listDesc || (prefStore != nil && !cmd.Flags().Changed("desc") &&
		prefStore.GetString(driven.PrefSortDirection) == string(domain.SortDesc)) {
		direction = domain.SortDesc
	}

	pageSize := listPageSize
	if pageSize == 0 && prefStore != nil {
		pageSize = prefStore.GetInt(driven.PrefPageSize)
	}

	page := contactService.List(driving.ListOptions{
		Query:         listQuery,
		Criteria:      criteria,
		SortField:     field,
		SortDirection: direction,
		Page:          listPage,
		PageSize:      pageSize,
	})

	if listJSON {
		return outputJSON(cmd, page)
	}

	printContactRows(cmd, page.Items)
	cmd.Printf("\nPage %d of %d", page.CurrentPage, page.TotalPages)
	if page.HasMore {
		cmd.Printf(" (more available, use --page %d)", page.CurrentPage+1)
	}
	cmd.Println()
	return nil
}

func printContactRows(cmd *cobra.Command, contacts []domain.Contact) {
	if len(contacts) == 0 {
		cmd.Println("No contacts found.")
		return
	}
	for i := range contacts {
		c := &contacts[i]
		cmd.Printf("  %-14s %-25s", c.ID, c.DisplayName())
		if c.Email != "" {
			cmd.Printf("  %s", c.Email)
		}
		if c.Company != "" {
			cmd.Printf("  (%s)", c.Company)
		}
		cmd.Println()
	}
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}
	if err := contactService.Load(cmd.Context()); err != nil {
		return err
	}

	contact, err := contactService.Get(args[0])
	if err != nil {
		return err
	}

	if listJSON {
		return outputJSON(cmd, contact)
	}

	cmd.Printf("%s\n", contact.DisplayName())
	cmd.Printf("  ID:       %s\n", contact.ID)
	if contact.Email != "" {
		cmd.Printf("  Email:    %s\n", contact.Email)
	}
	if contact.Phone != "" {
		cmd.Printf("  Phone:    %s\n", domain.FormatPhoneNumber(contact.Phone))
	}
	if contact.Company != "" {
		cmd.Printf("  Company:  %s\n", contact.Company)
	}
	if contact.CreateDate != "" {
		cmd.Printf("  Created:  %s\n", contact.CreateDate)
	}
	if contact.Notes != "" {
		cmd.Printf("  Notes:    %s\n", contact.Notes)
	}
	return nil
}

func contactPropsFromFlags() domain.ContactProperties {
	return domain.ContactProperties{
		FirstName: contactFirstName,
		LastName:  contactLastName,
		Email:     contactEmail,
		Phone:     contactPhone,
		Company:   contactCompany,
		Notes:     contactNotes,
	}
}

func runContactsCreate(cmd *cobra.Command, _ []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	props := contactPropsFromFlags()
	if props.Email != "" && !domain.IsValidEmail(props.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	contact, err := contactService.Create(cmd.Context(), props)
	if err != nil {
		return err
	}

	cmd.Printf("Created contact %s (%s)\n", contact.DisplayName(), contact.ID)
	return nil
}

func runContactsUpdate(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	props := contactPropsFromFlags()
	if props.Email != "" && !domain.IsValidEmail(props.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	contact, err := contactService.Update(cmd.Context(), args[0], props)
	if err != nil {
		return err
	}

	cmd.Printf("Updated contact %s\n", contact.ID)
	return nil
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	if err := contactService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	cmd.Printf("Deleted contact %s\n", args[0])
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

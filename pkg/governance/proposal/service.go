package proposal

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bhagyamudgal/governance-ui/pkg/metrics"
	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

const (
	metricsStructName = "proposal.service"

	proposalCreatedEventName = "GovernanceProposalCreated"
	proposalFailedEventName  = "GovernanceProposalFailed"

	proposeDurationMetricName = "Custom/Governance/ProposeDuration"
)

var (
	// ErrNoCouncil indicates a council vote was requested in a realm without a
	// council mint.
	ErrNoCouncil = errors.New("realm has no council")
	// ErrNoTokenOwnerRecord indicates the proposer never deposited the
	// governing token of the voting track.
	ErrNoTokenOwnerRecord = errors.New("proposer has no token owner record")
	// ErrTransactionFailed indicates a transaction landed with an error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Service creates governance proposals on behalf of a wallet, which both
// proposes and pays.
type Service struct {
	log        *logrus.Entry
	conf       *conf
	sc         solana.Client
	governance *governance.Client
	wallet     ed25519.PrivateKey
	commitment solana.Commitment
}

func NewService(sc solana.Client, wallet ed25519.PrivateKey, configProvider ConfigProvider) *Service {
	conf := configProvider()
	commitment := solana.CommitmentFromString(conf.commitment.Get(context.Background()))

	return &Service{
		log:        logrus.StandardLogger().WithField("type", "governance/proposal/service"),
		conf:       conf,
		sc:         sc,
		governance: governance.NewClient(sc, commitment),
		wallet:     wallet,
		commitment: commitment,
	}
}

// Propose creates a proposal with args.Instructions, inserts the
// instructions and signs it off so voting starts immediately. It returns the
// address of the new proposal.
func (s *Service) Propose(ctx context.Context, args *Args) (address ed25519.PublicKey, err error) {
	seg := metrics.StartSegment(ctx, metricsStructName, "Propose")
	defer func() { seg.End(err) }()

	log := s.log.WithFields(logrus.Fields{
		"method":          "Propose",
		"governance":      base58.Encode(args.Governance),
		"vote_by_council": args.VoteByCouncil,
	})

	start := time.Now()
	address, err = s.propose(ctx, log, args)
	metrics.RecordDuration(ctx, proposeDurationMetricName, time.Since(start))
	if err != nil {
		log.WithError(err).Warn("failed to create proposal")
		metrics.RecordEvent(ctx, proposalFailedEventName, map[string]interface{}{
			"governance": base58.Encode(args.Governance),
			"error":      err.Error(),
		})
		return nil, err
	}

	seg.AddAttribute("proposal", base58.Encode(address))
	log.WithField("proposal", base58.Encode(address)).Info("proposal created")
	metrics.RecordEvent(ctx, proposalCreatedEventName, map[string]interface{}{
		"governance":      base58.Encode(args.Governance),
		"proposal":        base58.Encode(address),
		"vote_by_council": args.VoteByCouncil,
		"instructions":    len(args.Instructions),
	})
	return address, nil
}

func (s *Service) propose(ctx context.Context, log *logrus.Entry, args *Args) (ed25519.PublicKey, error) {
	if args.Realm == nil {
		return nil, errors.New("realm is required")
	}

	program := args.Realm.Owner
	realm := args.Realm.PublicKey
	proposer := s.wallet.Public().(ed25519.PublicKey)

	version, err := s.governance.GetProgramVersion(program)
	if err != nil {
		return nil, err
	}
	if version < governance.ProgramVersionV3 {
		return nil, errors.Wrapf(governance.ErrUnsupportedVersion, "version %d", version)
	}

	mint := args.Realm.Account.CommunityMint
	if args.VoteByCouncil {
		if !args.Realm.Account.HasCouncil() {
			return nil, ErrNoCouncil
		}
		mint = args.Realm.Account.Config.CouncilMint
	}

	record, err := s.governance.GetTokenOwnerRecord(program, realm, mint, proposer)
	if errors.Is(err, governance.ErrAccountNotFound) {
		return nil, ErrNoTokenOwnerRecord
	} else if err != nil {
		return nil, err
	}

	proposalSeed, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate proposal seed")
	}

	proposal, _, err := governance.GetProposalAddress(program, &governance.GetProposalAddressArgs{
		Governance:         args.Governance,
		GoverningTokenMint: mint,
		ProposalSeed:       proposalSeed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive proposal address")
	}

	realmConfig, _, err := governance.GetRealmConfigAddress(program, &governance.GetRealmConfigAddressArgs{
		Realm: realm,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive realm config address")
	}

	proposalDeposit, _, err := governance.GetProposalDepositAddress(program, &governance.GetProposalDepositAddressArgs{
		Proposal:             proposal,
		ProposalDepositPayer: proposer,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive proposal deposit address")
	}

	var prerequisites []solana.Instruction
	for _, instruction := range args.Instructions {
		prerequisites = append(prerequisites, instruction.PrerequisiteInstructions...)
	}

	createProposal := governance.NewCreateProposalInstruction(
		program,
		&governance.CreateProposalInstructionAccounts{
			Realm:               realm,
			Proposal:            proposal,
			Governance:          args.Governance,
			ProposalOwnerRecord: record.PublicKey,
			GoverningTokenMint:  mint,
			GovernanceAuthority: proposer,
			Payer:               proposer,
			RealmConfig:         realmConfig,
			ProposalDeposit:     proposalDeposit,
		},
		&governance.CreateProposalInstructionArgs{
			Name:            args.Title,
			DescriptionLink: args.Description,
			VoteType:        governance.SingleChoiceVoteType(),
			Options:         []string{s.conf.approveOption.Get(ctx)},
			UseDenyOption:   true,
			ProposalSeed:    proposalSeed,
		},
	)

	var inserts []solana.Instruction
	for i, instruction := range args.Instructions {
		proposalTransaction, _, err := governance.GetProposalTransactionAddress(program, &governance.GetProposalTransactionAddressArgs{
			Proposal:    proposal,
			OptionIndex: 0,
			Index:       uint16(i),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive proposal transaction address")
		}

		inserts = append(inserts, governance.NewInsertTransactionInstruction(
			program,
			&governance.InsertTransactionInstructionAccounts{
				Governance:          args.Governance,
				Proposal:            proposal,
				TokenOwnerRecord:    record.PublicKey,
				GovernanceAuthority: proposer,
				ProposalTransaction: proposalTransaction,
				Payer:               proposer,
			},
			&governance.InsertTransactionInstructionArgs{
				OptionIndex:  0,
				Index:        uint16(i),
				HoldUpTime:   instruction.HoldUpTime,
				Instructions: []governance.InstructionData{instruction.Data},
			},
		))
	}

	signOff := governance.NewSignOffProposalInstruction(program, &governance.SignOffProposalInstructionAccounts{
		Realm:               realm,
		Governance:          args.Governance,
		Proposal:            proposal,
		Signatory:           proposer,
		ProposalOwnerRecord: record.PublicKey,
	})

	batches := batchInstructions(
		append(prerequisites, createProposal),
		inserts,
		signOff,
		int(s.conf.insertsPerTransaction.Get(ctx)),
	)

	for i, batch := range batches {
		sig, err := s.submit(ctx, batch)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to submit transaction %d of %d", i+1, len(batches))
		}

		log.WithFields(logrus.Fields{
			"signature": base58.Encode(sig[:]),
			"batch":     i + 1,
		}).Debug("transaction confirmed")
	}

	return proposal, nil
}

// batchInstructions groups the instructions of a proposal into transactions.
// The proposal is created first, instructions are inserted in order at most
// perTransaction at a time, and sign off goes with the last batch.
func batchInstructions(create []solana.Instruction, inserts []solana.Instruction, signOff solana.Instruction, perTransaction int) [][]solana.Instruction {
	if perTransaction < 1 {
		perTransaction = 1
	}

	batches := [][]solana.Instruction{create}
	for start := 0; start < len(inserts); start += perTransaction {
		end := start + perTransaction
		if end > len(inserts) {
			end = len(inserts)
		}
		batches = append(batches, inserts[start:end:end])
	}

	last := len(batches) - 1
	batches[last] = append(batches[last], signOff)
	return batches
}

func (s *Service) submit(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}

	blockhash, err := s.sc.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}

	txn := solana.NewTransaction(s.wallet.Public().(ed25519.PublicKey), instructions...)
	txn.SetBlockhash(blockhash)
	if err := txn.Sign(s.wallet); err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := s.sc.SubmitTransaction(txn, s.commitment)
	if err != nil {
		return sig, errors.Wrap(err, "failed to submit transaction")
	}

	status, err := s.sc.GetSignatureStatus(sig, s.commitment)
	if err != nil {
		return sig, errors.Wrap(err, "failed to confirm transaction")
	}
	if status.ErrorResult != nil {
		return sig, errors.Wrapf(ErrTransactionFailed, "%s: %s", base58.Encode(sig[:]), status.ErrorResult.Error())
	}

	return sig, nil
}

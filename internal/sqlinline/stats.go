package sqlinline

const QAdminStats = `--sql c0b932e0-0fa6-445f-9498-39bcb98c783a
with campaign_agg as (
  select
    count(*) as total,
    count(*) filter (where status = 'pending') as pending,
    count(*) filter (where status = 'approved') as approved,
    count(*) filter (where status = 'completed') as completed
  from campaigns
), donation_agg as (
  select
    count(*) as donations,
    coalesce(sum(amount), 0) as amount_total,
    count(*) filter (where created_at > now() - interval '24 hours') as donations_24h,
    coalesce(sum(amount) filter (where created_at > now() - interval '24 hours'), 0) as amount_24h
  from donations
  where payment_status = 'completed'
)
select c.total, c.pending, c.approved, c.completed,
       d.donations, d.amount_total, d.donations_24h, d.amount_24h
from campaign_agg c, donation_agg d;
`

const QExportDonations = `--sql f84ebd36-c62b-4afc-8b6f-04a1edee82c5
select d.id, d.campaign_id, c.title, coalesce(d.user_id::text, ''), d.guest_name, d.amount, d.anonymous, d.donor_country, d.payment_id, d.created_at
from donations d
join campaigns c on c.id = d.campaign_id
where d.payment_status = 'completed'
order by d.created_at desc;
`

const QExportCampaigns = `--sql bad10b4c-4e22-4b1e-9663-06e1398ea9a6
select id, title, category, status, goal_amount, amount_raised, created_at
from campaigns
order by created_at desc;
`
